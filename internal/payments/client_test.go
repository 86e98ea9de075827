package payments

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *Metrics) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	metrics := NewMetrics(prometheus.NewRegistry())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(&http.Client{Timeout: 2 * time.Second}, srv.URL+"/", metrics, logger), metrics
}

func TestClientList(t *testing.T) {
	client, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/payments" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"id":"pay_1","amount":1050,"currency":"BRL","status":"SUCCEEDED","providerPaymentId":"pi_1","createdAt":"2024-03-05T14:07:09Z"},
			{"id":"pay_2","amount":99,"currency":"USD","status":"PENDING","providerPaymentId":"pi_2","createdAt":"2024-03-06T10:00:00Z"}
		]`)
	})

	list, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List() returned %d payments", len(list))
	}
	if list[0].ID != "pay_1" || list[1].Status != StatusPending {
		t.Errorf("List() = %+v", list)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues(OpList, OutcomeOK)); got != 1 {
		t.Errorf("ok list calls = %v", got)
	}
}

func TestClientListNull(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})

	list, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("List() = %#v, want empty slice", list)
	}
}

func TestClientListServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.List(context.Background())

	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("List() error = %v, want *StatusError", err)
	}
	if serr.StatusCode != 500 || serr.StatusText != "Internal Server Error" || serr.Decoded {
		t.Errorf("StatusError = %+v", serr)
	}
}

func TestClientGet(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/payments/pay%2F1" {
			t.Errorf("path = %s", r.URL.EscapedPath())
		}
		_, _ = io.WriteString(w, `{"id":"pay/1","amount":500,"currency":"EUR","status":"FAILED","providerPaymentId":"pi_9","createdAt":"2024-03-05T14:07:09Z"}`)
	})

	p, err := client.Get(context.Background(), "pay/1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if p.ID != "pay/1" || p.Status != StatusFailed || p.Amount != 500 {
		t.Errorf("Get() = %+v", p)
	}
}

func TestClientGetNotFound(t *testing.T) {
	client, metrics := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues(OpGet, OutcomeNotFound)); got != 1 {
		t.Errorf("not_found get calls = %v", got)
	}
}

func TestClientGetEmptyID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty id")
	})

	if _, err := client.Get(context.Background(), "  "); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientCreate(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/payments" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}

		var req CreateRequest
		if err := sonic.ConfigStd.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req != (CreateRequest{Amount: 1050, Currency: "BRL", PaymentMethod: "pm_card_visa"}) {
			t.Errorf("request = %+v", req)
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"pay_new","amount":1050,"currency":"BRL","status":"PENDING","providerPaymentId":"pi_new","createdAt":"2024-03-05T14:07:09Z"}`)
	})

	p, err := client.Create(context.Background(), CreateRequest{Amount: 1050, Currency: "BRL", PaymentMethod: "pm_card_visa"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID != "pay_new" {
		t.Errorf("Create() = %+v", p)
	}
}

func TestClientCreateUnreadableBody(t *testing.T) {
	for _, body := range []string{"created", ""} {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, body)
		})

		p, err := client.Create(context.Background(), CreateRequest{Amount: 1, Currency: "BRL", PaymentMethod: "pm_card_visa"})
		if err != nil {
			t.Fatalf("Create() with body %q error = %v, want success", body, err)
		}
		if p == nil {
			t.Fatalf("Create() with body %q returned no payment", body)
		}
	}
}

func TestClientCreateTimeoutAfterSend(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(&http.Client{Timeout: 50 * time.Millisecond}, srv.URL, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.Create(context.Background(), CreateRequest{Amount: 1, Currency: "BRL", PaymentMethod: "pm_card_visa"})
	if !errors.Is(err, ErrConnectionFailed) {
		t.Fatalf("Create() error = %v, want ErrConnectionFailed", err)
	}
	if NotCreated(err) {
		t.Error("timeout after the request was sent reported as nothing created")
	}
}

func TestClientCreateRejected(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantDecoded bool
	}{
		{"error field", `{"error":"invalid currency"}`, "invalid currency", true},
		{"message field", `{"message":"amount too small","error":"Bad Request"}`, "amount too small", true},
		{"message list", `{"message":["amount must be positive","currency is required"]}`, "amount must be positive; currency is required", true},
		{"no reason", `{"code":42}`, "", true},
		{"not json", `upstream exploded`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := client.Create(context.Background(), CreateRequest{Amount: 1, Currency: "BRL", PaymentMethod: "pm_card_visa"})

			var serr *StatusError
			if !errors.As(err, &serr) {
				t.Fatalf("Create() error = %v, want *StatusError", err)
			}
			if serr.StatusCode != http.StatusBadRequest || serr.Op != OpCreate {
				t.Errorf("StatusError = %+v", serr)
			}
			if serr.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", serr.Message, tt.wantMessage)
			}
			if serr.Decoded != tt.wantDecoded {
				t.Errorf("Decoded = %v, want %v", serr.Decoded, tt.wantDecoded)
			}
		})
	}
}

func TestClientConnectionFailed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	metrics := NewMetrics(prometheus.NewRegistry())
	client := NewClient(&http.Client{Timeout: time.Second}, url, metrics, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := client.List(context.Background())
	if !errors.Is(err, ErrConnectionFailed) {
		t.Fatalf("List() error = %v, want ErrConnectionFailed", err)
	}
	if IsCanceled(err) {
		t.Error("connection failure reported as canceled")
	}
	if !NotCreated(err) {
		t.Error("refused connection not reported as nothing created")
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues(OpList, OutcomeConnection)); got != 1 {
		t.Errorf("connection_error list calls = %v", got)
	}
}

func TestClientCanceled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.List(ctx)
	if !IsCanceled(err) {
		t.Fatalf("List() error = %v, want canceled", err)
	}
	if errors.Is(err, ErrConnectionFailed) {
		t.Error("canceled call reported as connection failure")
	}
}

func TestClientWithoutMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if _, err := client.List(context.Background()); err != nil {
		t.Fatalf("List() error = %v", err)
	}
}
