package model

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

const (
	TransactionTypeEarn         TransactionType = "earn"
	TransactionTypeConvertToUSD TransactionType = "convert-to-usd"
	TransactionTypeConvertToGHS TransactionType = "convert-to-ghs"
	TransactionTypeWithdraw     TransactionType = "withdraw"
)

type Currency string

const (
	CurrencyBC  Currency = "BC"
	CurrencyUSD Currency = "USD"
	CurrencyGHS Currency = "GHS"
)

type Transaction struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	UserID      int64           `json:"user_id" db:"user_id"`
	Type        TransactionType `json:"type" db:"type"`
	Amount      float64         `json:"amount" db:"amount"` // positive = credit, negative = debit
	Currency    Currency        `json:"currency" db:"currency"`
	Description string          `json:"description" db:"description"`
	CreatedAt   time.Time       `json:"date" db:"created_at"`
}
