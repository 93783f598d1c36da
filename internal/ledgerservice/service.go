// Package ledgerservice manages business logic layer of the portfolio ledger.
//
// The ledger is the single source of truth for currency balances and the
// transaction log. Every mutation runs under one write lock, is mirrored to
// the store and is then announced to observers.
package ledgerservice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/pkg/currencypkg"
)

// RateSource provides the rate table used for conversions and valuation.
type RateSource interface {
	Current() domain.RateTable
}

// Store provides persistence needed by the ledger.
//
//go:generate mockgen -source service.go -destination service_mock.go -package ledgerservice
type Store interface {
	LoadBalances(ctx context.Context) ([]domain.CurrencyBalance, error)
	LoadTransactions(ctx context.Context) ([]domain.Transaction, error)
	Save(ctx context.Context, state domain.LedgerState) error
}

// Observer is notified with the new state after every mutation.
// It runs while the ledger is locked and must not call back into it.
type Observer func(domain.LedgerState)

// Service facilitates portfolio ledger logic.
type Service struct {
	rates RateSource
	store Store
	now   func() time.Time

	mu           sync.RWMutex
	balances     []domain.CurrencyBalance
	index        map[string]int
	transactions []domain.Transaction
	observers    map[int]Observer
	nextObserver int
}

// DefaultBalances returns the starting portfolio.
func DefaultBalances() []domain.CurrencyBalance {
	seed := []struct {
		code   string
		amount int64
	}{
		{currencypkg.PLN, 5000},
		{currencypkg.EUR, 2000},
		{currencypkg.USD, 2000},
		{currencypkg.GBP, 0},
		{currencypkg.CHF, 0},
	}

	balances := make([]domain.CurrencyBalance, 0, len(seed))
	for _, s := range seed {
		balances = append(balances, domain.CurrencyBalance{
			Code:   s.code,
			Name:   currencypkg.Name(s.code),
			Symbol: currencypkg.Symbol(s.code),
			Amount: decimal.NewFromInt(s.amount),
		})
	}

	return balances
}

// New returns the ledger seeded with DefaultBalances and then restored from store.
//
// A slot that is missing or malformed in the store keeps its default.
func New(ctx context.Context, rates RateSource, store Store) *Service {
	s := &Service{
		rates:     rates,
		store:     store,
		now:       time.Now,
		observers: make(map[int]Observer),
	}

	s.setBalances(DefaultBalances())
	s.restore(ctx)

	return s
}

func (s *Service) restore(ctx context.Context) {
	l := zerolog.Ctx(ctx)

	balances, err := s.store.LoadBalances(ctx)
	switch {
	case err == nil:
		s.setBalances(balances)
	case errors.Is(err, domain.ErrStateNotFound):
		l.Info().Msg("no persisted balances, using defaults")
	default:
		l.Warn().Err(err).Msg("cannot restore balances, using defaults")
	}

	transactions, err := s.store.LoadTransactions(ctx)
	switch {
	case err == nil:
		s.transactions = transactions
	case errors.Is(err, domain.ErrStateNotFound):
		l.Info().Msg("no persisted transactions")
	default:
		l.Warn().Err(err).Msg("cannot restore transactions, starting with empty log")
	}
}

func (s *Service) setBalances(balances []domain.CurrencyBalance) {
	s.balances = append([]domain.CurrencyBalance(nil), balances...)
	s.index = make(map[string]int, len(balances))

	for i, b := range s.balances {
		s.index[b.Code] = i
	}
}

// updateIfPresent sets the amount of an existing balance.
// Balances are never created here; unknown codes are ignored.
func (s *Service) updateIfPresent(code string, amount decimal.Decimal) bool {
	i, ok := s.index[code]
	if !ok {
		return false
	}

	s.balances[i].Amount = amount

	return true
}

func (s *Service) balance(code string) (decimal.Decimal, bool) {
	i, ok := s.index[code]
	if !ok {
		return decimal.Zero, false
	}

	return s.balances[i].Amount, true
}

// GetBalance returns the amount held in code, or zero if there is no such balance.
func (s *Service) GetBalance(_ context.Context, code string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	amount, _ := s.balance(code)

	return amount
}

// UpdateBalance replaces the amount of an existing balance.
// It is a no-op for a currency the ledger has no balance for.
func (s *Service) UpdateBalance(ctx context.Context, code string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.updateIfPresent(code, amount) {
		zerolog.Ctx(ctx).Debug().Str("currency", code).Msg("update of unknown balance ignored")
		return
	}

	s.changed(ctx)
}

// CalculateExchange converts amount of from into to at the current rates.
// The result is not rounded.
func (s *Service) CalculateExchange(_ context.Context, from, to string, amount decimal.Decimal) decimal.Decimal {
	return convert(s.rates.Current(), from, to, amount)
}

func convert(rates domain.RateTable, from, to string, amount decimal.Decimal) decimal.Decimal {
	if from == to {
		return amount
	}

	return amount.Mul(rates.Rate(from)).Div(rates.Rate(to))
}

// CalculateTotalValue returns the portfolio value in PLN at the current rates.
func (s *Service) CalculateTotalValue(_ context.Context) decimal.Decimal {
	rates := s.rates.Current()

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, b := range s.balances {
		total = total.Add(b.Amount.Mul(rates.Rate(b.Code)))
	}

	return total
}

// ExecuteExchange moves amount out of from and the converted amount into to,
// then records a completed exchange transaction with the given rate.
//
// It fails with *domain.InsufficientFundsError, leaving the ledger untouched,
// when from has no balance or holds less than amount. A credit to a currency
// without a balance is dropped.
func (s *Service) ExecuteExchange(ctx context.Context, from, to string, amount, rate decimal.Decimal) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rates := s.rates.Current()

	s.mu.Lock()
	defer s.mu.Unlock()

	toAmount := convert(rates, from, to, amount)

	fromBalance, ok := s.balance(from)
	if !ok || fromBalance.LessThan(amount) {
		err := &domain.InsufficientFundsError{Currency: from}
		l.Info().Err(err).Str("amount", amount.String()).Send()

		return domain.Transaction{}, err
	}

	s.updateIfPresent(from, fromBalance.Sub(amount))

	if toBalance, ok := s.balance(to); ok {
		s.updateIfPresent(to, toBalance.Add(toAmount))
	} else {
		l.Warn().Str("currency", to).Msg("credit to unknown balance dropped")
	}

	t := s.record(domain.CreateTransactionParams{
		Type:         domain.TransactionExchange,
		FromCurrency: from,
		ToCurrency:   to,
		FromAmount:   amount,
		ToAmount:     toAmount,
		Rate:         rate,
		Status:       domain.StatusCompleted,
	})

	s.changed(ctx)

	return t, nil
}

// AddTransaction records a transaction. Only a completed transaction moves
// money: FromAmount is debited from FromCurrency and ToAmount credited to
// ToCurrency, without a funds check and only for existing balances.
func (s *Service) AddTransaction(ctx context.Context, arg domain.CreateTransactionParams) domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.record(arg)

	if arg.Status == domain.StatusCompleted {
		if b, ok := s.balance(arg.FromCurrency); ok {
			s.updateIfPresent(arg.FromCurrency, b.Sub(arg.FromAmount))
		}

		if b, ok := s.balance(arg.ToCurrency); ok {
			s.updateIfPresent(arg.ToCurrency, b.Add(arg.ToAmount))
		}
	}

	s.changed(ctx)

	return t
}

// record prepends a new transaction to the log.
func (s *Service) record(arg domain.CreateTransactionParams) domain.Transaction {
	t := domain.Transaction{
		ID:           uuid.NewString(),
		Type:         arg.Type,
		FromCurrency: arg.FromCurrency,
		ToCurrency:   arg.ToCurrency,
		FromAmount:   arg.FromAmount,
		ToAmount:     arg.ToAmount,
		Rate:         arg.Rate,
		Timestamp:    s.now().UTC(),
		Status:       arg.Status,
	}

	s.transactions = append([]domain.Transaction{t}, s.transactions...)

	return t
}

// Balances returns a copy of all balances in seed order.
func (s *Service) Balances(_ context.Context) []domain.CurrencyBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.CurrencyBalance{}, s.balances...)
}

// Transactions returns a copy of the log, most recent first.
func (s *Service) Transactions(_ context.Context) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Transaction{}, s.transactions...)
}

// State returns a copy of balances and transactions taken at the same instant.
func (s *Service) State(_ context.Context) domain.LedgerState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state()
}

func (s *Service) state() domain.LedgerState {
	return domain.LedgerState{
		Balances:     append([]domain.CurrencyBalance{}, s.balances...),
		Transactions: append([]domain.Transaction{}, s.transactions...),
	}
}

// Subscribe registers o to be told about every change. Call the returned
// function to stop.
func (s *Service) Subscribe(o Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextObserver
	s.nextObserver++
	s.observers[id] = o

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.observers, id)
	}
}

// changed persists the state and notifies observers. Callers hold the write lock.
func (s *Service) changed(ctx context.Context) {
	state := s.state()

	if err := s.store.Save(ctx, state); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("cannot persist ledger state")
	}

	for _, o := range s.observers {
		o(state)
	}
}
