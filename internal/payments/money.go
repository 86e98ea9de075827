package payments

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrAmountEmpty    = errors.New("amount is empty")
	ErrAmountInvalid  = errors.New("amount must be a number greater than zero")
	ErrAmountTooLarge = errors.New("amount exceeds the representable range")
)

// plainAmount is digits with an optional fraction. Exponents and signs are
// not accepted.
var plainAmount = regexp.MustCompile(`^\d+([.,]\d+)?$`)

var (
	hundred       = decimal.NewFromInt(100)
	maxMinorUnits = decimal.NewFromInt(math.MaxInt64)
)

// ToMinorUnits converts an operator-entered decimal amount to minor units,
// rounding half away from zero at the cent. "10.555" becomes 1056.
func ToMinorUnits(amount string) (int64, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return 0, ErrAmountEmpty
	}
	if !plainAmount.MatchString(s) {
		return 0, ErrAmountInvalid
	}
	s = strings.Replace(s, ",", ".", 1)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrAmountInvalid
	}
	if !d.IsPositive() {
		return 0, ErrAmountInvalid
	}

	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxMinorUnits) {
		return 0, ErrAmountTooLarge
	}
	if cents.IsZero() {
		return 0, ErrAmountInvalid
	}
	return cents.IntPart(), nil
}

// MajorUnits is the display value of an amount in minor units.
func MajorUnits(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
