package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"multipay/internal/payments"
	"multipay/internal/web"
)

const (
	submissionCreated    = "created"
	submissionInvalid    = "invalid"
	submissionDuplicate  = "duplicate"
	submissionRejected   = "rejected"
	submissionConnection = "connection_error"
	submissionFailed     = "failed"
)

// PaymentHandler serves the payment creation form and its submissions.
type PaymentHandler struct {
	api     PaymentsAPI
	guard   payments.SubmissionGuard
	metrics *payments.Metrics
	logger  *slog.Logger
}

func NewPaymentHandler(api PaymentsAPI, guard payments.SubmissionGuard, metrics *payments.Metrics, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		api:     api,
		guard:   guard,
		metrics: metrics,
		logger:  logger,
	}
}

func (h *PaymentHandler) layout() web.Layout {
	return web.NewLayout("Novo pagamento", "/payments/new", false)
}

// Show renders an empty form with a fresh token.
func (h *PaymentHandler) Show(c echo.Context) error {
	view := web.NewFormView(payments.NewCreateForm(), payments.NewFormToken())
	return renderPage(c, http.StatusOK, web.PageNew, h.layout(), view)
}

// Handle validates the submitted form and creates the payment.
func (h *PaymentHandler) Handle(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "payment-handler", trace.WithAttributes(
		attribute.String("handler", "payment"),
	))
	defer span.End()

	var form payments.CreateForm
	if err := c.Bind(&form); err != nil {
		span.RecordError(err)
		return c.NoContent(http.StatusBadRequest)
	}
	token := c.FormValue("formToken")
	view := web.NewFormView(form, token)

	req, err := form.Validate()
	if err != nil {
		var verr *payments.ValidationError
		if errors.As(err, &verr) {
			view.Errors = verr.Fields
		}
		h.metrics.ObserveSubmission(submissionInvalid)
		return renderPage(c, http.StatusUnprocessableEntity, web.PageNew, h.layout(), view)
	}

	span.SetAttributes(
		attribute.Int64("payment.amount", req.Amount),
		attribute.String("payment.currency", req.Currency),
	)

	claimed, err := h.guard.Claim(ctx, token)
	if err != nil {
		// Fail open.
		h.logger.Warn("form token guard unavailable", "error", err)
		claimed = true
	}
	if !claimed {
		h.metrics.ObserveSubmission(submissionDuplicate)
		view.Token = payments.NewFormToken()
		view.Banner = web.ErrorBanner(web.MsgDuplicate)
		return renderPage(c, http.StatusConflict, web.PageNew, h.layout(), view)
	}

	created, err := h.api.Create(ctx, req)
	if err != nil {
		if payments.NotCreated(err) {
			if releaseErr := h.guard.Release(context.WithoutCancel(ctx), token); releaseErr != nil {
				h.logger.Warn("releasing form token", "error", releaseErr)
			}
		}
		if payments.IsCanceled(err) {
			return c.NoContent(statusClientClosedRequest)
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, "payment creation failed")

		msg, code, result := submissionFailure(err)
		h.metrics.ObserveSubmission(result)
		h.logger.Error("creating payment", "error", err, "amount", req.Amount, "currency", req.Currency)

		view.Banner = web.ErrorBanner(msg)
		return renderPage(c, code, web.PageNew, h.layout(), view)
	}

	h.metrics.ObserveSubmission(submissionCreated)
	h.logger.Info("payment created", "id", created.ID, "status", created.Status, "amount", created.Amount, "currency", created.Currency)
	span.SetAttributes(attribute.String("payment.id", created.ID))

	view = web.NewFormView(payments.NewCreateForm(), payments.NewFormToken())
	view.Banner = web.SuccessBanner()
	return renderPage(c, http.StatusOK, web.PageNew, h.layout(), view)
}

// submissionFailure maps a creation error to the banner message, the status
// the form is served with and the metrics label.
func submissionFailure(err error) (string, int, string) {
	var serr *payments.StatusError
	switch {
	case errors.As(err, &serr):
		code := http.StatusUnprocessableEntity
		if serr.StatusCode >= 500 {
			code = http.StatusBadGateway
		}
		return rejectionMessage(serr), code, submissionRejected
	case errors.Is(err, payments.ErrConnectionFailed):
		return web.MsgConnection, http.StatusServiceUnavailable, submissionConnection
	default:
		return web.MsgCreateFailed, http.StatusBadGateway, submissionFailed
	}
}

func rejectionMessage(serr *payments.StatusError) string {
	switch {
	case serr.Message != "":
		return serr.Message
	case serr.Decoded:
		return web.MsgCreateFailed
	default:
		return fmt.Sprintf("Erro %d: %s", serr.StatusCode, serr.StatusText)
	}
}
