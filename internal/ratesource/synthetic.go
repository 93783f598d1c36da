// Package ratesource produces the exchange rate tables the ledger values balances with.
package ratesource

import (
	"github.com/shopspring/decimal"

	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/pkg/currencypkg"
	"github.com/go-petr/kantoor/pkg/randompkg"
)

// Provider supplies a fresh rate table on every call.
type Provider interface {
	Refresh() domain.RateTable
}

// Baseline is the centre of a synthetic rate and the maximum distance it may drift from it.
type Baseline struct {
	Rate  decimal.Decimal
	Delta decimal.Decimal
}

// DefaultBaselines approximate PLN market rates.
var DefaultBaselines = map[string]Baseline{
	currencypkg.EUR: {Rate: decimal.RequireFromString("4.35"), Delta: decimal.RequireFromString("0.05")},
	currencypkg.USD: {Rate: decimal.RequireFromString("3.98"), Delta: decimal.RequireFromString("0.05")},
	currencypkg.GBP: {Rate: decimal.RequireFromString("5.05"), Delta: decimal.RequireFromString("0.08")},
	currencypkg.CHF: {Rate: decimal.RequireFromString("4.50"), Delta: decimal.RequireFromString("0.06")},
}

// Synthetic jitters fixed baselines by a uniform random delta.
type Synthetic struct {
	baselines map[string]Baseline
	rand      func() float64
}

// NewSynthetic returns a provider for the given baselines.
func NewSynthetic(baselines map[string]Baseline) *Synthetic {
	return &Synthetic{
		baselines: baselines,
		rand:      randompkg.Float64,
	}
}

// Refresh returns baseline + uniform(-delta, +delta) for every currency, rounded to 4 places.
// The reference currency is always exactly 1.
func (s *Synthetic) Refresh() domain.RateTable {
	t := make(domain.RateTable, len(s.baselines)+1)

	for code, b := range s.baselines {
		jitter := decimal.NewFromFloat(2*s.rand() - 1).Mul(b.Delta)
		t[code] = b.Rate.Add(jitter).Round(4)
	}

	t[currencypkg.Reference] = decimal.NewFromInt(1)

	return t
}
