// Package alertrepo persists price alerts in a key-value store.
package alertrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-petr/kantoor/internal/domain"
)

// AlertsKey is the storage slot of all price alerts.
const AlertsKey = "kantoor-price-alerts"

// KV provides key-value storage needed by the alert repository.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo facilitates alert repository layer logic.
type Repo struct {
	kv KV
}

// New returns alert Repo backed by kv.
func New(kv KV) *Repo {
	return &Repo{kv: kv}
}

// Load returns all persisted alerts.
func (r *Repo) Load(ctx context.Context) ([]domain.PriceAlert, error) {
	raw, err := r.kv.Get(ctx, AlertsKey)
	if err != nil {
		return nil, err
	}

	var alerts []domain.PriceAlert
	if err := json.Unmarshal(raw, &alerts); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedState, AlertsKey, err)
	}

	for _, a := range alerts {
		if a.ID == "" || !a.Condition.Valid() {
			return nil, fmt.Errorf("%w: %s: invalid alert %q", domain.ErrMalformedState, AlertsKey, a.ID)
		}
	}

	return alerts, nil
}

// Save overwrites all persisted alerts.
func (r *Repo) Save(ctx context.Context, alerts []domain.PriceAlert) error {
	if alerts == nil {
		alerts = []domain.PriceAlert{}
	}

	raw, err := json.Marshal(alerts)
	if err != nil {
		return err
	}

	return r.kv.Set(ctx, AlertsKey, raw)
}
