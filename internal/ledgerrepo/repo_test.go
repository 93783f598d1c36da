package ledgerrepo

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/internal/kvrepo"
	"github.com/go-petr/kantoor/pkg/errorspkg"
)

func testState() domain.LedgerState {
	now := time.Now().UTC()

	return domain.LedgerState{
		Balances: []domain.CurrencyBalance{
			{Code: "PLN", Name: "Polish Zloty", Symbol: "zł", Amount: decimal.RequireFromString("9350")},
			{Code: "EUR", Name: "Euro", Symbol: "€", Amount: decimal.RequireFromString("1000.25")},
		},
		Transactions: []domain.Transaction{
			{
				ID:           uuid.NewString(),
				Type:         domain.TransactionExchange,
				FromCurrency: "EUR",
				ToCurrency:   "PLN",
				FromAmount:   decimal.NewFromInt(1000),
				ToAmount:     decimal.NewFromInt(1000).Mul(decimal.RequireFromString("4.35")),
				Rate:         decimal.RequireFromString("4.35"),
				Timestamp:    now,
				Status:       domain.StatusCompleted,
			},
			{
				ID:           uuid.NewString(),
				Type:         domain.TransactionDeposit,
				FromCurrency: "PLN",
				ToCurrency:   "PLN",
				FromAmount:   decimal.Zero,
				ToAmount:     decimal.NewFromInt(100),
				Rate:         decimal.NewFromInt(1),
				Timestamp:    now.Add(-time.Hour),
				Status:       domain.StatusPending,
			},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := New(kvrepo.NewMemory())

	want := testState()
	require.NoError(t, repo.Save(ctx, want))

	balances, err := repo.LoadBalances(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want.Balances, balances); diff != "" {
		t.Errorf("LoadBalances() mismatch (-want +got):\n%s", diff)
	}

	transactions, err := repo.LoadTransactions(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want.Transactions, transactions); diff != "" {
		t.Errorf("LoadTransactions() mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveEmptyState(t *testing.T) {
	ctx := context.Background()
	kv := kvrepo.NewMemory()
	repo := New(kv)

	require.NoError(t, repo.Save(ctx, domain.LedgerState{}))

	raw, err := kv.Get(ctx, TransactionsKey)
	require.NoError(t, err)
	require.Equal(t, "[]", string(raw))

	transactions, err := repo.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Empty(t, transactions)
}

func TestTimestampIsISO8601(t *testing.T) {
	ctx := context.Background()
	kv := kvrepo.NewMemory()
	repo := New(kv)

	state := testState()
	state.Transactions[0].Timestamp = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, state))

	raw, err := kv.Get(ctx, TransactionsKey)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"timestamp":"2024-03-01T12:30:00Z"`)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		key     string
		payload string
		load    func(r *Repo) error
		wantErr error
	}{
		{
			name:    "Balances not JSON",
			key:     BalancesKey,
			payload: `{not json`,
			load:    loadBalances,
			wantErr: domain.ErrMalformedState,
		},
		{
			name:    "Balances duplicate code",
			key:     BalancesKey,
			payload: `[{"code":"EUR","amount":"1"},{"code":"EUR","amount":"2"}]`,
			load:    loadBalances,
			wantErr: domain.ErrMalformedState,
		},
		{
			name:    "Balances empty code",
			key:     BalancesKey,
			payload: `[{"code":"","amount":"1"}]`,
			load:    loadBalances,
			wantErr: domain.ErrMalformedState,
		},
		{
			name:    "Balances bad amount",
			key:     BalancesKey,
			payload: `[{"code":"EUR","amount":"lots"}]`,
			load:    loadBalances,
			wantErr: domain.ErrMalformedState,
		},
		{
			name:    "Transactions wrong shape",
			key:     TransactionsKey,
			payload: `{"id":"1"}`,
			load:    loadTransactions,
			wantErr: domain.ErrMalformedState,
		},
		{
			name:    "Transactions unknown type",
			key:     TransactionsKey,
			payload: `[{"id":"1","type":"refund","status":"completed","timestamp":"2024-03-01T12:30:00Z"}]`,
			load:    loadTransactions,
			wantErr: domain.ErrMalformedState,
		},
		{
			name:    "Transactions unknown status",
			key:     TransactionsKey,
			payload: `[{"id":"1","type":"buy","status":"failed","timestamp":"2024-03-01T12:30:00Z"}]`,
			load:    loadTransactions,
			wantErr: domain.ErrMalformedState,
		},
		{
			name:    "Transactions missing id",
			key:     TransactionsKey,
			payload: `[{"type":"buy","status":"completed","timestamp":"2024-03-01T12:30:00Z"}]`,
			load:    loadTransactions,
			wantErr: domain.ErrMalformedState,
		},
		{
			name:    "Transactions missing timestamp",
			key:     TransactionsKey,
			payload: `[{"id":"1","type":"buy","status":"completed"}]`,
			load:    loadTransactions,
			wantErr: domain.ErrMalformedState,
		},
		{
			name:    "Transactions bad timestamp",
			key:     TransactionsKey,
			payload: `[{"id":"1","type":"buy","status":"completed","timestamp":"yesterday"}]`,
			load:    loadTransactions,
			wantErr: domain.ErrMalformedState,
		},
		{
			name:    "Balances not found",
			key:     "other",
			payload: `[]`,
			load:    loadBalances,
			wantErr: domain.ErrStateNotFound,
		},
		{
			name:    "Transactions not found",
			key:     "other",
			payload: `[]`,
			load:    loadTransactions,
			wantErr: domain.ErrStateNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kv := kvrepo.NewMemory()
			require.NoError(t, kv.Set(context.Background(), tc.key, []byte(tc.payload)))

			err := tc.load(New(kv))
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func loadBalances(r *Repo) error {
	_, err := r.LoadBalances(context.Background())
	return err
}

func loadTransactions(r *Repo) error {
	_, err := r.LoadTransactions(context.Background())
	return err
}

func TestSaveStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	kv := NewMockKV(ctrl)
	kv.EXPECT().Set(gomock.Any(), gomock.Eq(BalancesKey), gomock.Any()).
		Times(1).
		Return(errorspkg.ErrInternal)
	kv.EXPECT().Set(gomock.Any(), gomock.Eq(TransactionsKey), gomock.Any()).Times(0)

	err := New(kv).Save(context.Background(), testState())
	require.ErrorIs(t, err, errorspkg.ErrInternal)
}

func TestLoadStorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	kv := NewMockKV(ctrl)
	kv.EXPECT().Get(gomock.Any(), gomock.Eq(BalancesKey)).
		Times(1).
		Return(nil, errorspkg.ErrInternal)

	_, err := New(kv).LoadBalances(context.Background())
	require.ErrorIs(t, err, errorspkg.ErrInternal)
}
