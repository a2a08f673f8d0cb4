// Package money rounds, converts and renders monetary amounts held as decimals.
package money

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/angelmondragon/storefront-pricing/pkg/db/models"
	"github.com/angelmondragon/storefront-pricing/pkg/enums"
)

// SymbolSeparator keeps the currency symbol on the same line as the amount.
const SymbolSeparator = "\u00a0"

// DefaultRounding applies to currencies without an explicit rounding step.
var DefaultRounding = decimal.New(1, -2)

// Round rounds amount half-up to the nearest multiple of step.
func Round(amount, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return amount
	}
	return amount.Div(step).Round(0).Mul(step)
}

// IsZero reports whether amount rounds to zero at the step precision.
func IsZero(amount, step decimal.Decimal) bool {
	if !step.IsPositive() {
		step = DefaultRounding
	}
	return Round(amount, step).IsZero()
}

// RoundFor rounds amount to the precision of currency.
func RoundFor(amount decimal.Decimal, currency *models.Currency) decimal.Decimal {
	return Round(amount, roundingOf(currency))
}

// IsZeroFor reports whether amount is zero at the precision of currency.
func IsZeroFor(amount decimal.Decimal, currency *models.Currency) bool {
	return IsZero(amount, roundingOf(currency))
}

// Float returns amount rounded to currency precision as a float, as JSON
// clients expect.
func Float(amount decimal.Decimal, currency *models.Currency) float64 {
	f, _ := RoundFor(amount, currency).Float64()
	return f
}

// Convert converts amount between currencies using their rates relative to
// the company currency. Missing currencies or rates leave amount unchanged.
func Convert(amount decimal.Decimal, from, to *models.Currency) decimal.Decimal {
	if from == nil || to == nil || from.ID == to.ID {
		return amount
	}
	if !from.Rate.IsPositive() || !to.Rate.IsPositive() {
		return amount
	}
	return amount.Mul(to.Rate).Div(from.Rate)
}

// Places is the number of decimal digits the currency displays. Trailing
// zeros of the stored step do not count: numeric columns scan back padded
// to their scale, so 0.010000 displays two places.
func Places(currency *models.Currency) int {
	step := roundingOf(currency)
	digits := step.String()
	dot := strings.IndexByte(digits, '.')
	if dot < 0 {
		return 0
	}
	return len(strings.TrimRight(digits[dot+1:], "0"))
}

// FormatAmount renders amount with locale-aware digit grouping at currency precision.
func FormatAmount(amount decimal.Decimal, currency *models.Currency, tag language.Tag) string {
	places := Places(currency)
	f, _ := RoundFor(amount, currency).Float64()
	p := message.NewPrinter(tag)
	return p.Sprint(number.Decimal(f, number.Scale(places)))
}

// Monetary renders amount as storefront markup: the formatted value wrapped in
// an oe_currency_value span with the currency symbol on the configured side.
func Monetary(amount decimal.Decimal, currency *models.Currency, tag language.Tag) string {
	value := fmt.Sprintf(`<span class="oe_currency_value">%s</span>`, FormatAmount(amount, currency, tag))
	if currency == nil || currency.Symbol == "" {
		return value
	}
	symbol := html.EscapeString(currency.Symbol)
	if currency.Position == enums.CurrencyPositionBefore {
		return symbol + SymbolSeparator + value
	}
	return value + SymbolSeparator + symbol
}

func roundingOf(currency *models.Currency) decimal.Decimal {
	if currency == nil || !currency.Rounding.IsPositive() {
		return DefaultRounding
	}
	return currency.Rounding
}
