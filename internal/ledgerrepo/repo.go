// Package ledgerrepo persists portfolio ledger state in a key-value store.
package ledgerrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/go-petr/kantoor/internal/domain"
)

// Storage slots of the ledger state.
const (
	BalancesKey     = "kantoor-portfolio-balances"
	TransactionsKey = "kantoor-portfolio-transactions"
)

// KV provides key-value storage needed by the ledger repository.
//
//go:generate mockgen -source repo.go -destination repo_mock.go -package ledgerrepo
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo serializes balances and transactions into their storage slots.
type Repo struct {
	kv KV
}

// New returns ledger Repo backed by kv.
func New(kv KV) *Repo {
	return &Repo{kv: kv}
}

// LoadBalances reads the persisted balances.
//
// It returns domain.ErrStateNotFound if nothing was persisted yet and
// domain.ErrMalformedState if the slot cannot be trusted.
func (r *Repo) LoadBalances(ctx context.Context) ([]domain.CurrencyBalance, error) {
	raw, err := r.kv.Get(ctx, BalancesKey)
	if err != nil {
		return nil, err
	}

	var balances []domain.CurrencyBalance
	if err := json.Unmarshal(raw, &balances); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedState, BalancesKey, err)
	}

	seen := make(map[string]struct{}, len(balances))

	for _, b := range balances {
		if b.Code == "" {
			return nil, fmt.Errorf("%w: %s: empty currency code", domain.ErrMalformedState, BalancesKey)
		}

		if _, ok := seen[b.Code]; ok {
			return nil, fmt.Errorf("%w: %s: duplicate currency %s", domain.ErrMalformedState, BalancesKey, b.Code)
		}

		seen[b.Code] = struct{}{}
	}

	return balances, nil
}

// LoadTransactions reads the persisted transaction log, most recent first.
//
// Errors follow LoadBalances.
func (r *Repo) LoadTransactions(ctx context.Context) ([]domain.Transaction, error) {
	raw, err := r.kv.Get(ctx, TransactionsKey)
	if err != nil {
		return nil, err
	}

	var transactions []domain.Transaction
	if err := json.Unmarshal(raw, &transactions); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedState, TransactionsKey, err)
	}

	for _, t := range transactions {
		switch {
		case t.ID == "":
			return nil, fmt.Errorf("%w: %s: empty transaction id", domain.ErrMalformedState, TransactionsKey)
		case !t.Type.Valid():
			return nil, fmt.Errorf("%w: %s: transaction %s has type %q", domain.ErrMalformedState, TransactionsKey, t.ID, t.Type)
		case !t.Status.Valid():
			return nil, fmt.Errorf("%w: %s: transaction %s has status %q", domain.ErrMalformedState, TransactionsKey, t.ID, t.Status)
		case t.Timestamp.IsZero():
			return nil, fmt.Errorf("%w: %s: transaction %s has no timestamp", domain.ErrMalformedState, TransactionsKey, t.ID)
		}
	}

	return transactions, nil
}

// Save overwrites both slots with the given state.
func (r *Repo) Save(ctx context.Context, state domain.LedgerState) error {
	l := zerolog.Ctx(ctx)

	balances := state.Balances
	if balances == nil {
		balances = []domain.CurrencyBalance{}
	}

	transactions := state.Transactions
	if transactions == nil {
		transactions = []domain.Transaction{}
	}

	rawBalances, err := json.Marshal(balances)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	rawTransactions, err := json.Marshal(transactions)
	if err != nil {
		l.Error().Err(err).Send()
		return err
	}

	if err := r.kv.Set(ctx, BalancesKey, rawBalances); err != nil {
		return err
	}

	return r.kv.Set(ctx, TransactionsKey, rawTransactions)
}
