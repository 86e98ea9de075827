package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"multipay/internal/payments"
	"multipay/internal/web"
)

type PaymentDetailHandler struct {
	api    PaymentsAPI
	loc    *time.Location
	logger *slog.Logger
}

func NewPaymentDetailHandler(api PaymentsAPI, loc *time.Location, logger *slog.Logger) *PaymentDetailHandler {
	return &PaymentDetailHandler{
		api:    api,
		loc:    loc,
		logger: logger,
	}
}

func (h *PaymentDetailHandler) Handle(c echo.Context) error {
	layout := web.NewLayout("Detalhes do pagamento", "/payments", false)
	id := strings.TrimSpace(c.Param("id"))

	mode := requestMode(c)
	if mode == modeDeferred && id != "" {
		return renderPage(c, http.StatusOK, web.PageDetail, layout, web.DetailLoading(fragmentURL(c)))
	}

	var view web.DetailView
	if id == "" {
		view = web.DetailNotFound()
	} else {
		var canceled bool
		view, canceled = h.load(c, id)
		if canceled {
			return c.NoContent(statusClientClosedRequest)
		}
	}

	code := phaseStatus(view.Phase)
	if mode == modeFragment {
		return c.Render(code, web.FragmentDetail, view)
	}
	return renderPage(c, code, web.PageDetail, layout, view)
}

func (h *PaymentDetailHandler) load(c echo.Context, id string) (web.DetailView, bool) {
	ctx, span := tracer.Start(c.Request().Context(), "payment-detail-handler", trace.WithAttributes(
		attribute.String("handler", "payment-detail"),
		attribute.String("payment.id", id),
	))
	defer span.End()

	p, err := h.api.Get(ctx, id)
	switch {
	case err == nil:
		return web.DetailLoaded(p, h.loc), false
	case errors.Is(err, payments.ErrNotFound):
		return web.DetailNotFound(), false
	case payments.IsCanceled(err):
		return web.DetailView{}, true
	default:
		span.RecordError(err)
		h.logger.Error("loading payment", "id", id, "error", err)
		return web.DetailFailed(), false
	}
}
