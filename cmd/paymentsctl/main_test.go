package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("PAYMENTS_API_URL", "http://127.0.0.1:1")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /payments", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":"pay_1","amount":1050,"currency":"BRL","status":"SUCCEEDED","providerPaymentId":"pi_1","createdAt":"2024-03-05T14:07:09Z"}]`)
	})
	mux.HandleFunc("GET /payments/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "pay_1" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"id":"pay_1","amount":1050,"currency":"BRL","status":"SUCCEEDED","providerPaymentId":"pi_1","createdAt":"2024-03-05T14:07:09Z"}`)
	})
	mux.HandleFunc("POST /payments", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"pay_2","amount":2500,"currency":"USD","status":"PENDING","providerPaymentId":"pi_2","createdAt":"2024-03-05T14:07:09Z"}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListCommand(t *testing.T) {
	srv := newAPI(t)

	out, err := run(t, "list", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"ID", "pay_1", "Sucesso", "pi_1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

func TestListCommandJSON(t *testing.T) {
	srv := newAPI(t)

	out, err := run(t, "list", "--json", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	if !strings.Contains(out, `"providerPaymentId": "pi_1"`) {
		t.Errorf("output = %s", out)
	}
}

func TestGetCommandNotFound(t *testing.T) {
	srv := newAPI(t)

	_, err := run(t, "get", "nope", "--api-url", srv.URL)
	if err == nil || !strings.Contains(err.Error(), "não encontrado") {
		t.Errorf("get nope error = %v", err)
	}
}

func TestCreateCommand(t *testing.T) {
	srv := newAPI(t)

	out, err := run(t, "create", "--amount", "25", "--currency", "usd", "--api-url", srv.URL)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(out, "Pagamento criado com sucesso! pay_2") {
		t.Errorf("output = %s", out)
	}
}

func TestAPIURLFlagOverridesEnvironment(t *testing.T) {
	srv := newAPI(t)

	if _, err := run(t, "list", "--api-url", srv.URL); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := os.Getenv("PAYMENTS_API_URL"); got != "http://127.0.0.1:1" {
		t.Errorf("PAYMENTS_API_URL changed to %q", got)
	}
}

func TestAPIURLFlagValidated(t *testing.T) {
	_, err := run(t, "list", "--api-url", "ftp://example.com")
	if err == nil || !strings.Contains(err.Error(), "invalid payments api url") {
		t.Errorf("list with ftp url error = %v", err)
	}
}

func TestCreateCommandValidates(t *testing.T) {
	_, err := run(t, "create", "--amount", "0", "--api-url", "http://127.0.0.1:1")
	if err == nil || !strings.Contains(err.Error(), "Valor deve ser maior que zero") {
		t.Errorf("create --amount 0 error = %v", err)
	}
}
