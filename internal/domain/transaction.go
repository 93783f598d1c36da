package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags what kind of operation a transaction records.
type TransactionType string

// Supported transaction types.
const (
	TransactionBuy        TransactionType = "buy"
	TransactionSell       TransactionType = "sell"
	TransactionExchange   TransactionType = "exchange"
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Valid reports whether t is one of the supported transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TransactionBuy, TransactionSell, TransactionExchange, TransactionDeposit, TransactionWithdrawal:
		return true
	default:
		return false
	}
}

// TransactionStatus is the settlement state of a transaction.
type TransactionStatus string

// Supported transaction statuses.
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusCancelled TransactionStatus = "cancelled"
)

// Valid reports whether s is one of the supported statuses.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Transaction is an immutable record in the ledger log.
type Transaction struct {
	ID           string            `json:"id"`
	Type         TransactionType   `json:"type"`
	FromCurrency string            `json:"fromCurrency"`
	ToCurrency   string            `json:"toCurrency"`
	FromAmount   decimal.Decimal   `json:"fromAmount"`
	ToAmount     decimal.Decimal   `json:"toAmount"`
	Rate         decimal.Decimal   `json:"rate"`
	Timestamp    time.Time         `json:"timestamp"`
	Status       TransactionStatus `json:"status"`
}

// CreateTransactionParams is the input data to record a transaction.
type CreateTransactionParams struct {
	Type         TransactionType   `json:"type"`
	FromCurrency string            `json:"fromCurrency"`
	ToCurrency   string            `json:"toCurrency"`
	FromAmount   decimal.Decimal   `json:"fromAmount"`
	ToAmount     decimal.Decimal   `json:"toAmount"`
	Rate         decimal.Decimal   `json:"rate"`
	Status       TransactionStatus `json:"status"`
}

// LedgerState is a point in time copy of the ledger.
//
// Transactions are ordered most recent first.
type LedgerState struct {
	Balances     []CurrencyBalance `json:"balances"`
	Transactions []Transaction     `json:"transactions"`
}
