package model

import (
	"time"

	"github.com/google/uuid"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending   WithdrawalStatus = "pending"
	WithdrawalStatusCompleted WithdrawalStatus = "completed"
	WithdrawalStatusFailed    WithdrawalStatus = "failed"
)

// Withdrawal is the immutable record of one payout attempt. The pending row
// is written before the gateway call so an interrupted attempt is auditable.
type Withdrawal struct {
	ID             uuid.UUID        `json:"id" db:"id"`
	UserID         int64            `json:"user_id" db:"user_id"`
	AmountGHS      float64          `json:"amount_ghs" db:"amount_ghs"`
	AmountUSD      float64          `json:"amount_usd" db:"amount_usd"` // amount_ghs / exchange_rate at request time
	ExchangeRate   float64          `json:"exchange_rate" db:"exchange_rate"`
	MomoNumber     string           `json:"momo_number" db:"momo_number"`
	Status         WithdrawalStatus `json:"status" db:"status"`
	ProviderTxID   *string          `json:"provider_transaction_id,omitempty" db:"provider_tx_id"`
	IdempotencyKey string           `json:"idempotency_key" db:"idempotency_key"`
	FailureReason  *string          `json:"failure_reason,omitempty" db:"failure_reason"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty" db:"completed_at"`
}
