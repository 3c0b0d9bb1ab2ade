package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Kgee7/EarnBull/internal/model"
)

var ErrWithdrawalNotFound = errors.New("withdrawal not found")

// CreateWithdrawal persists the pending audit row before the gateway call.
func (r *Repository) CreateWithdrawal(ctx context.Context, w *model.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (id, user_id, amount_ghs, amount_usd, exchange_rate, momo_number, status, idempotency_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		w.ID,
		w.UserID,
		w.AmountGHS,
		w.AmountUSD,
		w.ExchangeRate,
		w.MomoNumber,
		w.Status,
		w.IdempotencyKey,
	).Scan(&w.CreatedAt)
}

// MarkWithdrawalFailed records a definite gateway decline.
func (r *Repository) MarkWithdrawalFailed(ctx context.Context, id uuid.UUID, reason string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE withdrawals SET status = $2, failure_reason = $3, completed_at = $4
		WHERE id = $1`,
		id, model.WithdrawalStatusFailed, reason, time.Now())
	return err
}

func (r *Repository) GetWithdrawal(ctx context.Context, id uuid.UUID) (*model.Withdrawal, error) {
	var w model.Withdrawal
	err := r.db.GetContext(ctx, &w, "SELECT * FROM withdrawals WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *Repository) GetUserWithdrawals(ctx context.Context, userID int64) ([]model.Withdrawal, error) {
	var withdrawals []model.Withdrawal
	err := r.db.SelectContext(ctx, &withdrawals,
		"SELECT * FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC", userID)
	return withdrawals, err
}

// GetPendingWithdrawals returns unresolved payout attempts older than the
// given age, for the reconciliation watcher.
func (r *Repository) GetPendingWithdrawals(ctx context.Context, olderThan time.Duration) ([]model.Withdrawal, error) {
	var withdrawals []model.Withdrawal
	err := r.db.SelectContext(ctx, &withdrawals, `
		SELECT * FROM withdrawals
		WHERE status = 'pending' AND created_at < $1`,
		time.Now().Add(-olderThan))
	return withdrawals, err
}
