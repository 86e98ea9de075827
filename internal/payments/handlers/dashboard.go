package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"multipay/internal/payments"
	"multipay/internal/payments/workers"
	"multipay/internal/web"
)

// HealthSource reports the last known state of the payments API.
type HealthSource interface {
	Snapshot() workers.APIHealth
}

type DashboardHandler struct {
	api    PaymentsAPI
	health HealthSource
	loc    *time.Location
	logger *slog.Logger
}

func NewDashboardHandler(api PaymentsAPI, health HealthSource, loc *time.Location, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		api:    api,
		health: health,
		loc:    loc,
		logger: logger,
	}
}

func (h *DashboardHandler) Handle(c echo.Context) error {
	layout := web.NewLayout("Dashboard", "/", true)
	provider := web.NewProviderStatus(h.health.Snapshot(), h.loc)

	mode := requestMode(c)
	if mode == modeDeferred {
		return renderPage(c, http.StatusOK, web.PageDashboard, layout, web.DashboardLoading(fragmentURL(c), provider))
	}

	ctx, span := tracer.Start(c.Request().Context(), "dashboard-handler", trace.WithAttributes(
		attribute.String("handler", "dashboard"),
	))
	defer span.End()

	list, err := h.api.List(ctx)
	if payments.IsCanceled(err) {
		return c.NoContent(statusClientClosedRequest)
	}

	var view web.DashboardView
	if err != nil {
		span.RecordError(err)
		h.logger.Error("loading dashboard summary", "error", err)
		view = web.DashboardFailed(provider)
	} else {
		view = web.DashboardLoaded(payments.Summarize(list), provider)
	}

	code := phaseStatus(view.Phase)
	if mode == modeFragment {
		return c.Render(code, web.FragmentDashboard, view)
	}
	return renderPage(c, code, web.PageDashboard, layout, view)
}
