package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"multipay/internal/payments"
	"multipay/internal/web"
)

// PaymentsAPI is what the handlers need from the payments API client.
type PaymentsAPI interface {
	List(ctx context.Context) ([]payments.Payment, error)
	Get(ctx context.Context, id string) (*payments.Payment, error)
	Create(ctx context.Context, req payments.CreateRequest) (*payments.Payment, error)
}

// statusClientClosedRequest answers a request whose client went away before
// the payments API replied. Nobody reads it.
const statusClientClosedRequest = 499

var tracer = otel.Tracer("dashboard-handlers")

// loadMode tells how a data-backed page should be served.
type loadMode int

const (
	// modeDeferred serves the layout with a skeleton; the page script pulls the data.
	modeDeferred loadMode = iota
	// modeFragment serves only the loaded partial.
	modeFragment
	// modeSync loads the data and serves the full page, for clients without scripts.
	modeSync
)

func requestMode(c echo.Context) loadMode {
	switch {
	case c.QueryParam("partial") == "1":
		return modeFragment
	case c.QueryParam("sync") == "1":
		return modeSync
	default:
		return modeDeferred
	}
}

func fragmentURL(c echo.Context) string {
	return c.Request().URL.EscapedPath() + "?partial=1"
}

// phaseStatus is the HTTP status a loaded view is served with.
func phaseStatus(p web.Phase) int {
	switch p {
	case web.PhaseFailed:
		return http.StatusBadGateway
	case web.PhaseNotFound:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}

func renderPage(c echo.Context, code int, page string, layout web.Layout, body any) error {
	return c.Render(code, page, web.Page{Layout: layout, Body: body})
}
