package alertrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/internal/kvrepo"
)

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := New(kvrepo.NewMemory())

	_, err := repo.Load(ctx)
	require.ErrorIs(t, err, domain.ErrStateNotFound)

	triggered := time.Now().UTC()
	want := []domain.PriceAlert{
		{
			ID:         uuid.NewString(),
			Currency:   "EUR",
			Condition:  domain.AlertAbove,
			TargetRate: decimal.RequireFromString("4.40"),
			Active:     true,
			CreatedAt:  time.Now().UTC(),
		},
		{
			ID:          uuid.NewString(),
			Currency:    "USD",
			Condition:   domain.AlertBelow,
			TargetRate:  decimal.RequireFromString("3.90"),
			CreatedAt:   time.Now().UTC(),
			TriggeredAt: &triggered,
		},
	}

	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMalformed(t *testing.T) {
	for name, payload := range map[string]string{
		"not json":          `[{`,
		"missing id":        `[{"currency":"EUR","condition":"above","targetRate":"4"}]`,
		"unknown condition": `[{"id":"1","currency":"EUR","condition":"near","targetRate":"4"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := kvrepo.NewMemory()
			require.NoError(t, kv.Set(context.Background(), AlertsKey, []byte(payload)))

			_, err := New(kv).Load(context.Background())
			require.ErrorIs(t, err, domain.ErrMalformedState)
		})
	}
}
