package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrAlertNotFound indicates that the alert is not found.
	ErrAlertNotFound = errors.New("alert not found")
	// ErrInvalidCondition indicates an unknown alert condition.
	ErrInvalidCondition = errors.New("invalid alert condition")
	// ErrUnsupportedCurrency indicates a currency the application has no rates for.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// AlertCondition tells on which side of the target an alert fires.
type AlertCondition string

// Supported alert conditions.
const (
	AlertAbove AlertCondition = "above"
	AlertBelow AlertCondition = "below"
)

// Valid reports whether c is a supported condition.
func (c AlertCondition) Valid() bool {
	return c == AlertAbove || c == AlertBelow
}

// PriceAlert fires once when a currency rate crosses its target.
type PriceAlert struct {
	ID          string          `json:"id"`
	Currency    string          `json:"currency"`
	Condition   AlertCondition  `json:"condition"`
	TargetRate  decimal.Decimal `json:"targetRate"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	TriggeredAt *time.Time      `json:"triggeredAt,omitempty"`
}

// Crossed reports whether rate satisfies the alert condition.
func (a PriceAlert) Crossed(rate decimal.Decimal) bool {
	switch a.Condition {
	case AlertAbove:
		return rate.GreaterThanOrEqual(a.TargetRate)
	case AlertBelow:
		return rate.LessThanOrEqual(a.TargetRate)
	default:
		return false
	}
}

// CreateAlertParams is the input data to create a price alert.
type CreateAlertParams struct {
	Currency   string          `json:"currency"`
	Condition  AlertCondition  `json:"condition"`
	TargetRate decimal.Decimal `json:"targetRate"`
}
