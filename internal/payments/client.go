package payments

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
)

const maxErrorBody = 64 << 10

// Client talks to the payments API. It never retries: reads are cheap to
// repeat by reloading the page and creation is not idempotent.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *Metrics
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL string, metrics *Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		metrics:    metrics,
		logger:     logger,
	}
}

var tracer = otel.Tracer("payments-api-client")

var bufPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 256))
	},
}

func (c *Client) List(ctx context.Context) ([]Payment, error) {
	resp, err := c.do(ctx, OpList, http.MethodGet, "/payments", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readStatusError(OpList, resp)
	}

	var list []Payment
	if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", OpList, err)
	}
	if list == nil {
		list = []Payment{}
	}
	return list, nil
}

// Get fetches one payment. A 404 from the API is reported as ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (*Payment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}

	resp, err := c.do(ctx, OpGet, http.MethodGet, "/payments/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, readStatusError(OpGet, resp)
	}

	var p Payment
	if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", OpGet, err)
	}
	return &p, nil
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (*Payment, error) {
	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufPool.Put(buf)

	if err := sonic.ConfigStd.NewEncoder(buf).Encode(req); err != nil {
		return nil, fmt.Errorf("%s: failed to serialize request body: %w", OpCreate, err)
	}

	resp, err := c.do(ctx, OpCreate, http.MethodPost, "/payments", buf)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readStatusError(OpCreate, resp)
	}

	// The payment exists once the API answers 2xx, whatever the body holds.
	var p Payment
	if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(&p); err != nil {
		c.logger.Warn("created payment has an unreadable body", "status", resp.StatusCode, "error", err)
		return &Payment{}, nil
	}
	return &p, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader) (*http.Response, error) {
	ctx, span := tracer.Start(ctx, "payments-api."+op, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("payments_api.path", path),
	))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create http request")
		return nil, fmt.Errorf("%s: unable to create http request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.metrics.observeCall(op, OutcomeCanceled, elapsed)
			span.SetStatus(codes.Error, "request canceled")
			return nil, fmt.Errorf("%s: %w", op, ctxErr)
		}
		c.metrics.observeCall(op, OutcomeConnection, elapsed)
		span.SetStatus(codes.Error, "error sending http request")
		c.logger.Warn("payments api unreachable", "operation", op, "error", err)
		return nil, fmt.Errorf("%s: %w: %w", op, ErrConnectionFailed, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		c.metrics.observeCall(op, OutcomeOK, elapsed)
		span.SetStatus(codes.Ok, "")
	case resp.StatusCode == http.StatusNotFound && op == OpGet:
		c.metrics.observeCall(op, OutcomeNotFound, elapsed)
	default:
		c.metrics.observeCall(op, OutcomeHTTPError, elapsed)
		span.SetStatus(codes.Error, resp.Status)
	}

	c.logger.Debug("payments api call", "operation", op, "status", resp.StatusCode, "elapsed", elapsed)
	return resp, nil
}

// readStatusError builds a StatusError, pulling a "message" or "error" field
// out of a JSON body when there is one.
func readStatusError(op string, resp *http.Response) error {
	serr := &StatusError{
		Op:         op,
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return serr
	}

	var body map[string]any
	if err := sonic.Unmarshal(raw, &body); err != nil || body == nil {
		return serr
	}
	serr.Decoded = true

	if msg := messageText(body["message"]); msg != "" {
		serr.Message = msg
	} else {
		serr.Message = messageText(body["error"])
	}
	return serr
}

// messageText accepts a plain string or a list of strings, which some
// frameworks use for validation failures.
func messageText(v any) string {
	switch m := v.(type) {
	case string:
		return strings.TrimSpace(m)
	case []any:
		parts := make([]string, 0, len(m))
		for _, item := range m {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// IsCanceled reports whether err comes from the caller giving up on the request.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
