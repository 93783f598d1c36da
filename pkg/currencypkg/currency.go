// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import (
	"github.com/Rhymond/go-money"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Constants for all supported currencies.
const (
	PLN = "PLN"
	EUR = "EUR"
	USD = "USD"
	GBP = "GBP"
	CHF = "CHF"
)

// Reference is the currency every rate is expressed in.
const Reference = PLN

// SupportedCurrencies holds all the supported currencies.
var SupportedCurrencies = []string{
	PLN,
	EUR,
	USD,
	GBP,
	CHF,
}

var names = map[string]string{
	PLN: "Polish Zloty",
	EUR: "Euro",
	USD: "US Dollar",
	GBP: "British Pound",
	CHF: "Swiss Franc",
}

// IsSupportedCurrency returns true if the currncy is supported.
func IsSupportedCurrency(currency string) bool {
	_, ok := names[currency]
	return ok
}

// ValidCurrency validates whether the currency is supported.
var ValidCurrency validator.Func = func(fl validator.FieldLevel) bool {
	if c, ok := fl.Field().Interface().(string); ok {
		return IsSupportedCurrency(c)
	}
	return false
}

// Name returns the display name of the currency, or the code itself.
func Name(code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return code
}

// Symbol returns the grapheme used to display the currency.
func Symbol(code string) string {
	if c := money.GetCurrency(code); c != nil {
		return c.Grapheme
	}
	return code
}

// Format renders amount the way the currency is usually written, e.g. "€1,000.00".
func Format(amount decimal.Decimal, code string) string {
	c := money.GetCurrency(code)
	if c == nil {
		return amount.StringFixed(2) + " " + code
	}

	minor := amount.Shift(int32(c.Fraction)).Round(0).IntPart()

	return c.Formatter().Format(minor)
}
