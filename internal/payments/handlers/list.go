package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"multipay/internal/payments"
	"multipay/internal/web"
)

type ListPaymentsHandler struct {
	api    PaymentsAPI
	loc    *time.Location
	logger *slog.Logger
}

func NewListPaymentsHandler(api PaymentsAPI, loc *time.Location, logger *slog.Logger) *ListPaymentsHandler {
	return &ListPaymentsHandler{
		api:    api,
		loc:    loc,
		logger: logger,
	}
}

func (h *ListPaymentsHandler) Handle(c echo.Context) error {
	layout := web.NewLayout("Pagamentos", "/payments", true)

	mode := requestMode(c)
	if mode == modeDeferred {
		return renderPage(c, http.StatusOK, web.PagePayments, layout, web.ListLoading(fragmentURL(c)))
	}

	ctx, span := tracer.Start(c.Request().Context(), "list-payments-handler", trace.WithAttributes(
		attribute.String("handler", "list-payments"),
	))
	defer span.End()

	list, err := h.api.List(ctx)
	if payments.IsCanceled(err) {
		return c.NoContent(statusClientClosedRequest)
	}

	var view web.ListView
	if err != nil {
		span.RecordError(err)
		h.logger.Error("listing payments", "error", err)
		view = web.ListFailed()
	} else {
		span.SetAttributes(attribute.Int("payments.count", len(list)))
		view = web.ListLoaded(list, h.loc)
	}

	code := phaseStatus(view.Phase)
	if mode == modeFragment {
		return c.Render(code, web.FragmentList, view)
	}
	return renderPage(c, code, web.PagePayments, layout, view)
}
