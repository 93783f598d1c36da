// Package alertservice manages business logic layer of price alerts.
package alertservice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/go-petr/kantoor/internal/domain"
	"github.com/go-petr/kantoor/pkg/currencypkg"
)

// Repo provides data access layer interface needed by alert service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package alertservice
type Repo interface {
	Load(ctx context.Context) ([]domain.PriceAlert, error)
	Save(ctx context.Context, alerts []domain.PriceAlert) error
}

// Service facilitates alert service layer logic.
type Service struct {
	repo Repo
	now  func() time.Time

	mu     sync.Mutex
	alerts []domain.PriceAlert
}

// New returns alert service with the persisted alerts loaded.
func New(ctx context.Context, repo Repo) *Service {
	l := zerolog.Ctx(ctx)

	s := &Service{
		repo: repo,
		now:  time.Now,
	}

	alerts, err := repo.Load(ctx)
	switch {
	case err == nil:
		s.alerts = alerts
	case errors.Is(err, domain.ErrStateNotFound):
	default:
		l.Warn().Err(err).Msg("cannot restore price alerts")
	}

	return s
}

// Create validates and stores a new active alert.
func (s *Service) Create(ctx context.Context, arg domain.CreateAlertParams) (domain.PriceAlert, error) {
	if !currencypkg.IsSupportedCurrency(arg.Currency) {
		return domain.PriceAlert{}, domain.ErrUnsupportedCurrency
	}

	if !arg.Condition.Valid() {
		return domain.PriceAlert{}, domain.ErrInvalidCondition
	}

	if !arg.TargetRate.IsPositive() {
		return domain.PriceAlert{}, domain.ErrNegativeAmount
	}

	a := domain.PriceAlert{
		ID:         uuid.NewString(),
		Currency:   arg.Currency,
		Condition:  arg.Condition,
		TargetRate: arg.TargetRate,
		Active:     true,
		CreatedAt:  s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = append(s.alerts, a)
	s.persist(ctx)

	return a, nil
}

// List returns all alerts in creation order.
func (s *Service) List(_ context.Context) []domain.PriceAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.PriceAlert{}, s.alerts...)
}

// Delete removes the alert with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.alerts {
		if a.ID == id {
			s.alerts = append(s.alerts[:i], s.alerts[i+1:]...)
			s.persist(ctx)

			return nil
		}
	}

	return domain.ErrAlertNotFound
}

// Evaluate fires every active alert whose currency crossed its target in table.
// A fired alert is deactivated and returned. Currencies missing from the
// table never fire.
func (s *Service) Evaluate(ctx context.Context, table domain.RateTable) []domain.PriceAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fired []domain.PriceAlert

	for i, a := range s.alerts {
		if !a.Active {
			continue
		}

		rate, ok := table[a.Currency]
		if !ok || !a.Crossed(rate) {
			continue
		}

		now := s.now().UTC()
		s.alerts[i].Active = false
		s.alerts[i].TriggeredAt = &now

		fired = append(fired, s.alerts[i])

		zerolog.Ctx(ctx).Info().
			Str("alert", a.ID).
			Str("currency", a.Currency).
			Str("condition", string(a.Condition)).
			Str("target", a.TargetRate.String()).
			Str("rate", rate.String()).
			Msg("price alert triggered")
	}

	if len(fired) > 0 {
		s.persist(ctx)
	}

	return fired
}

func (s *Service) persist(ctx context.Context) {
	if err := s.repo.Save(ctx, s.alerts); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("cannot persist price alerts")
	}
}
