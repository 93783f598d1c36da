package ratesource

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/pkg/currencypkg"
)

func TestSyntheticStaysWithinDelta(t *testing.T) {
	s := NewSynthetic(DefaultBaselines)

	for i := 0; i < 200; i++ {
		table := s.Refresh()

		require.Len(t, table, len(DefaultBaselines)+1)
		require.True(t, table.Rate(currencypkg.PLN).Equal(decimal.NewFromInt(1)))

		for code, b := range DefaultBaselines {
			r, ok := table[code]
			require.True(t, ok, code)
			require.True(t, r.IsPositive(), code)
			require.True(t, r.GreaterThanOrEqual(b.Rate.Sub(b.Delta)), "%s: %s", code, r)
			require.True(t, r.LessThanOrEqual(b.Rate.Add(b.Delta)), "%s: %s", code, r)
		}
	}
}

func TestSyntheticExtremes(t *testing.T) {
	baselines := map[string]Baseline{
		"EUR": {Rate: decimal.RequireFromString("4.35"), Delta: decimal.RequireFromString("0.05")},
	}

	s := NewSynthetic(baselines)

	s.rand = func() float64 { return 0 }
	require.Equal(t, "4.3", s.Refresh()["EUR"].String())

	s.rand = func() float64 { return 0.5 }
	require.Equal(t, "4.35", s.Refresh()["EUR"].String())
}

// sequence returns the tables it holds one by one, repeating the last.
type sequence struct {
	tables []domain.RateTable
	calls  int
}

func (s *sequence) Refresh() domain.RateTable {
	i := s.calls
	if i >= len(s.tables) {
		i = len(s.tables) - 1
	}
	s.calls++

	return s.tables[i].Copy()
}

func eur(rate string) domain.RateTable {
	return domain.RateTable{
		"PLN": decimal.NewFromInt(1),
		"EUR": decimal.RequireFromString(rate),
	}
}

func TestFeedRefreshAndHistory(t *testing.T) {
	p := &sequence{tables: []domain.RateTable{eur("4.30"), eur("4.40"), eur("4.35"), eur("4.31")}}

	f := NewFeed("ticker", time.Second, p, 3, zerolog.Nop())
	require.Equal(t, "ticker", f.Name())
	require.Equal(t, time.Second, f.Interval())
	require.Equal(t, 1, p.calls)
	require.False(t, f.UpdatedAt().IsZero())
	require.True(t, f.Current().Rate("EUR").Equal(decimal.RequireFromString("4.30")))

	var seen []domain.RateTable
	f.Subscribe(func(t domain.RateTable) { seen = append(seen, t) })

	require.NoError(t, f.Run())
	f.Refresh()
	f.Refresh()

	require.Len(t, seen, 3)
	require.True(t, f.Current().Rate("EUR").Equal(decimal.RequireFromString("4.31")))

	stats, err := f.Stats("EUR")
	require.NoError(t, err)
	require.Equal(t, 3, stats.Samples)
	require.InDelta(t, 4.31, stats.Current, 1e-9)
	require.InDelta(t, 4.40, stats.Max, 1e-9)
	require.InDelta(t, 4.31, stats.Min, 1e-9)
	require.InDelta(t, (4.40+4.35+4.31)/3, stats.Mean, 1e-9)
	require.InDelta(t, 4.31-4.40, stats.Change, 1e-9)
	require.Greater(t, stats.StdDev, 0.0)
}

func TestFeedCurrentIsCopy(t *testing.T) {
	f := NewFeed("portfolio", 30*time.Second, &sequence{tables: []domain.RateTable{eur("4.35")}}, 10, zerolog.Nop())

	c := f.Current()
	c["EUR"] = decimal.NewFromInt(100)

	require.True(t, f.Current().Rate("EUR").Equal(decimal.RequireFromString("4.35")))
}

func TestFeedStats(t *testing.T) {
	f := NewFeed("portfolio", 30*time.Second, &sequence{tables: []domain.RateTable{eur("4.35")}}, 10, zerolog.Nop())

	stats, err := f.Stats("EUR")
	require.NoError(t, err)
	require.Equal(t, 1, stats.Samples)
	require.Zero(t, stats.StdDev)
	require.Zero(t, stats.Change)

	_, err = f.Stats("GBP")
	require.ErrorIs(t, err, domain.ErrRateNotFound)
}
