package payments

import (
	"testing"

	"github.com/bytedance/sonic"
)

func TestStatusPresentation(t *testing.T) {
	tests := []struct {
		status   Status
		label    string
		tone     Tone
		provider string
	}{
		{StatusSucceeded, "Sucesso", ToneSuccess, "succeeded"},
		{StatusPending, "Pendente", TonePending, "pending"},
		{StatusFailed, "Falha", ToneFailure, "failed"},
		{StatusUnknown, "Desconhecido", ToneNeutral, "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.label {
			t.Errorf("%s.Label() = %q, want %q", tt.status, got, tt.label)
		}
		if got := tt.status.Tone(); got != tt.tone {
			t.Errorf("%s.Tone() = %q, want %q", tt.status, got, tt.tone)
		}
		if got := tt.status.ProviderStatus(); got != tt.provider {
			t.Errorf("%s.ProviderStatus() = %q, want %q", tt.status, got, tt.provider)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"SUCCEEDED": StatusSucceeded,
		"succeeded": StatusSucceeded,
		" PENDING ": StatusPending,
		"FAILED":    StatusFailed,
		"REFUNDED":  StatusUnknown,
		"":          StatusUnknown,
	}
	for in, want := range tests {
		if got := ParseStatus(in); got != want {
			t.Errorf("ParseStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPaymentDecode(t *testing.T) {
	body := `{
		"id": "pay_1",
		"amount": 1050,
		"currency": "BRL",
		"status": "CHARGEBACK",
		"providerPaymentId": "pi_123",
		"createdAt": "2024-03-05T14:07:09.000Z",
		"tenant": {"name": "Acme"}
	}`

	var p Payment
	if err := sonic.ConfigStd.UnmarshalFromString(body, &p); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if p.Status != StatusUnknown {
		t.Errorf("Status = %q, want %q", p.Status, StatusUnknown)
	}
	if p.Amount != 1050 || p.ProviderPaymentID != "pi_123" {
		t.Errorf("unexpected payment %+v", p)
	}
	if p.Tenant == nil || p.Tenant.Name != "Acme" {
		t.Errorf("Tenant = %+v", p.Tenant)
	}
	if p.CreatedAt.Year() != 2024 || p.CreatedAt.Hour() != 14 {
		t.Errorf("CreatedAt = %v", p.CreatedAt)
	}
}
