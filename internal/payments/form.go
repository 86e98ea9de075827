package payments

import (
	"errors"
	"strings"
)

// Option is a selectable value of a form field.
type Option struct {
	Value string
	Label string
}

var Currencies = []Option{
	{Value: "BRL", Label: "BRL - Real Brasileiro"},
	{Value: "USD", Label: "USD - Dólar Americano"},
	{Value: "EUR", Label: "EUR - Euro"},
}

var PaymentMethods = []Option{
	{Value: "pm_card_visa", Label: "Cartão de Crédito (visa teste)"},
}

const (
	DefaultCurrency      = "BRL"
	DefaultPaymentMethod = "pm_card_visa"
)

const (
	FieldAmount        = "amount"
	FieldCurrency      = "currency"
	FieldPaymentMethod = "paymentMethod"
)

// CreateForm is the payment creation form as the operator filled it in.
type CreateForm struct {
	Amount        string `form:"amount"`
	Currency      string `form:"currency"`
	PaymentMethod string `form:"paymentMethod"`
}

// NewCreateForm returns a form holding the default selections.
func NewCreateForm() CreateForm {
	return CreateForm{
		Currency:      DefaultCurrency,
		PaymentMethod: DefaultPaymentMethod,
	}
}

// Validate checks every field and builds the request sent to the API. On
// failure the error is a *ValidationError carrying one message per field.
func (f CreateForm) Validate() (CreateRequest, error) {
	fields := make(map[string]string)

	amount, err := ToMinorUnits(f.Amount)
	switch {
	case errors.Is(err, ErrAmountEmpty):
		fields[FieldAmount] = "Valor é obrigatório"
	case errors.Is(err, ErrAmountTooLarge):
		fields[FieldAmount] = "Valor muito alto"
	case err != nil:
		fields[FieldAmount] = "Valor deve ser maior que zero"
	}

	currency := strings.ToUpper(strings.TrimSpace(f.Currency))
	switch {
	case currency == "":
		fields[FieldCurrency] = "Moeda é obrigatória"
	case !hasOption(Currencies, currency):
		fields[FieldCurrency] = "Moeda não suportada"
	}

	method := strings.TrimSpace(f.PaymentMethod)
	switch {
	case method == "":
		fields[FieldPaymentMethod] = "Método de pagamento é obrigatório"
	case !hasOption(PaymentMethods, method):
		fields[FieldPaymentMethod] = "Método de pagamento não suportado"
	}

	if len(fields) > 0 {
		return CreateRequest{}, &ValidationError{Fields: fields}
	}

	return CreateRequest{
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: method,
	}, nil
}

func hasOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}
