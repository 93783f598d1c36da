// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientFunds indicates that the source balance cannot cover the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrBalanceNotFound indicates that there is no balance for the given currency.
	ErrBalanceNotFound = errors.New("balance not found")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates negative or zero amount where a positive one is required.
	ErrNegativeAmount = errors.New("amount must be positive")
)

// InsufficientFundsError is returned when an exchange cannot be covered by the source balance.
type InsufficientFundsError struct {
	Currency string
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient %s funds", e.Currency)
}

// Unwrap makes errors.Is(err, ErrInsufficientFunds) hold.
func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// CurrencyBalance holds the amount held in a single currency.
type CurrencyBalance struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
}
