package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrStateNotFound indicates that nothing has been persisted under the requested key.
	ErrStateNotFound = errors.New("state not found")
	// ErrMalformedState indicates that persisted state could not be decoded or is inconsistent.
	ErrMalformedState = errors.New("malformed state")
	// ErrRateNotFound indicates that the rate table has no entry for the currency.
	ErrRateNotFound = errors.New("rate not found")
)

// RateTable maps a currency code to the amount of PLN one unit buys.
type RateTable map[string]decimal.Decimal

// Rate returns the rate for code, or 1 when the table does not know it.
func (t RateTable) Rate(code string) decimal.Decimal {
	if r, ok := t[code]; ok {
		return r
	}

	return decimal.NewFromInt(1)
}

// Copy returns an independent copy of the table.
func (t RateTable) Copy() RateTable {
	c := make(RateTable, len(t))
	for k, v := range t {
		c[k] = v
	}

	return c
}

// RateStats summarizes recent samples of a single currency rate.
type RateStats struct {
	Currency string  `json:"currency"`
	Current  float64 `json:"current"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"stdDev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Change   float64 `json:"change"`
	Samples  int     `json:"samples"`
}
