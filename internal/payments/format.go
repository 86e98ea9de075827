package payments

import (
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const nbsp = "\u00a0"

var displayLanguage = language.BrazilianPortuguese

// FormatAmount renders an amount in minor units the way the pt-BR locale
// formats currency, whatever the currency itself: "R$ 1.234,56", "US$ 10,50".
// Codes that are not ISO 4217 currencies are shown as their own symbol.
func FormatAmount(minor int64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	p := message.NewPrinter(displayLanguage)

	symbol, digits := code, 2
	if unit, err := currency.ParseISO(code); err == nil {
		digits, _ = currency.Standard.Rounding(unit)
		symbol = p.Sprint(currency.Symbol(unit))
	}

	value := MajorUnits(minor)
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Abs()
	}

	amount := p.Sprint(number.Decimal(value.InexactFloat64(), number.Scale(digits)))
	return sign + symbol + nbsp + amount
}

const (
	dateTimeLayout = "02/01/2006, 15:04:05"
	dateLayout     = "02/01/2006, 15:04"
)

// FormatDateTime is the list view timestamp: day, month, year and time with seconds.
func FormatDateTime(t time.Time, loc *time.Location) string {
	return formatIn(t, loc, dateTimeLayout)
}

// FormatDate is the detail view timestamp, to the minute.
func FormatDate(t time.Time, loc *time.Location) string {
	return formatIn(t, loc, dateLayout)
}

func formatIn(t time.Time, loc *time.Location, layout string) string {
	if t.IsZero() {
		return "-"
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout)
}
