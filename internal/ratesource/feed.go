package ratesource

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/go-petr/kantoor/internal/domain"
)

// Feed keeps the latest table of a provider together with recent history.
//
// Each feed is refreshed on its own interval.
type Feed struct {
	name        string
	interval    time.Duration
	provider    Provider
	historySize int
	log         zerolog.Logger

	mu          sync.RWMutex
	current     domain.RateTable
	updatedAt   time.Time
	history     []domain.RateTable
	subscribers []func(domain.RateTable)
}

// NewFeed returns a feed that has already been refreshed once.
func NewFeed(name string, interval time.Duration, p Provider, historySize int, log zerolog.Logger) *Feed {
	if historySize < 1 {
		historySize = 1
	}

	f := &Feed{
		name:        name,
		interval:    interval,
		provider:    p,
		historySize: historySize,
		log:         log.With().Str("component", "rates").Str("feed", name).Logger(),
	}

	f.Refresh()

	return f
}

// Name returns the feed name.
func (f *Feed) Name() string {
	return f.name
}

// Interval returns how often the feed wants to be refreshed.
func (f *Feed) Interval() time.Duration {
	return f.interval
}

// Run refreshes the feed. It lets the feed be scheduled as a job.
func (f *Feed) Run() error {
	f.Refresh()
	return nil
}

// Refresh replaces the current table with a new one from the provider
// and notifies subscribers.
func (f *Feed) Refresh() domain.RateTable {
	t := f.provider.Refresh()

	f.mu.Lock()
	f.current = t
	f.updatedAt = time.Now().UTC()
	f.history = append(f.history, t)
	if len(f.history) > f.historySize {
		f.history = f.history[len(f.history)-f.historySize:]
	}
	subscribers := append([]func(domain.RateTable){}, f.subscribers...)
	f.mu.Unlock()

	f.log.Trace().Int("currencies", len(t)).Msg("rates refreshed")

	for _, fn := range subscribers {
		fn(t.Copy())
	}

	return t.Copy()
}

// Current returns a copy of the latest table.
func (f *Feed) Current() domain.RateTable {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.current.Copy()
}

// UpdatedAt returns when the current table was produced.
func (f *Feed) UpdatedAt() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.updatedAt
}

// Subscribe registers fn to be called with every new table.
// fn runs on the refreshing goroutine and must not block.
func (f *Feed) Subscribe(fn func(domain.RateTable)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.subscribers = append(f.subscribers, fn)
}

// Stats summarizes the rate history of code.
func (f *Feed) Stats(code string) (domain.RateStats, error) {
	f.mu.RLock()
	samples := make([]float64, 0, len(f.history))
	for _, t := range f.history {
		if r, ok := t[code]; ok {
			samples = append(samples, r.InexactFloat64())
		}
	}
	f.mu.RUnlock()

	if len(samples) == 0 {
		return domain.RateStats{}, domain.ErrRateNotFound
	}

	s := domain.RateStats{
		Currency: code,
		Current:  samples[len(samples)-1],
		Mean:     stat.Mean(samples, nil),
		Min:      floats.Min(samples),
		Max:      floats.Max(samples),
		Change:   samples[len(samples)-1] - samples[0],
		Samples:  len(samples),
	}

	if len(samples) > 1 {
		s.StdDev = stat.StdDev(samples, nil)
	}

	return s, nil
}
