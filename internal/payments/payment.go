package payments

import (
	"strings"
	"time"
)

type Status string

const (
	StatusSucceeded Status = "SUCCEEDED"
	StatusPending   Status = "PENDING"
	StatusFailed    Status = "FAILED"
	StatusUnknown   Status = "UNKNOWN"
)

// Tone is the visual treatment of a status badge.
type Tone string

const (
	ToneSuccess Tone = "success"
	TonePending Tone = "pending"
	ToneFailure Tone = "failure"
	ToneNeutral Tone = "neutral"
)

// ParseStatus maps a wire value onto the closed status set. Anything outside
// it becomes StatusUnknown.
func ParseStatus(s string) Status {
	switch Status(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusSucceeded:
		return StatusSucceeded
	case StatusPending:
		return StatusPending
	case StatusFailed:
		return StatusFailed
	default:
		return StatusUnknown
	}
}

func (s *Status) UnmarshalText(b []byte) error {
	*s = ParseStatus(string(b))
	return nil
}

// Label is the operator-facing name of the status.
func (s Status) Label() string {
	switch s {
	case StatusSucceeded:
		return "Sucesso"
	case StatusPending:
		return "Pendente"
	case StatusFailed:
		return "Falha"
	default:
		return "Desconhecido"
	}
}

func (s Status) Tone() Tone {
	switch s {
	case StatusSucceeded:
		return ToneSuccess
	case StatusPending:
		return TonePending
	case StatusFailed:
		return ToneFailure
	default:
		return ToneNeutral
	}
}

// ProviderStatus is the status as the payment provider names it.
func (s Status) ProviderStatus() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusPending:
		return "pending"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Tenant struct {
	Name string `json:"name"`
}

// Payment is a payment record as returned by the payments API. Amount is in
// minor units.
type Payment struct {
	ID                string    `json:"id"`
	Amount            int64     `json:"amount"`
	Currency          string    `json:"currency"`
	Status            Status    `json:"status"`
	ProviderPaymentID string    `json:"providerPaymentId"`
	CreatedAt         time.Time `json:"createdAt"`
	Tenant            *Tenant   `json:"tenant,omitempty"`
}

// CreateRequest is the body of a payment creation call.
type CreateRequest struct {
	Amount        int64  `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"paymentMethod"`
}
