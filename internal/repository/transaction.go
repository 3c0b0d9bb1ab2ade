package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/Kgee7/EarnBull/internal/model"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// GetTransactions returns the ledger page for a user, most recent first.
func (r *Repository) GetTransactions(ctx context.Context, userID int64, limit, offset int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT * FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	return transactions, err
}

// DeleteTransaction removes a single ledger entry. Deletion is an audit
// trail edit only: the balance effect of the entry is never reversed.
func (r *Repository) DeleteTransaction(ctx context.Context, userID int64, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// DeleteAllTransactions clears a user's ledger. Balances are untouched.
func (r *Repository) DeleteAllTransactions(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transactions WHERE user_id = $1", userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetTransaction fetches a single ledger entry owned by the user.
func (r *Repository) GetTransaction(ctx context.Context, userID int64, id uuid.UUID) (*model.Transaction, error) {
	var entry model.Transaction
	err := r.db.GetContext(ctx, &entry,
		"SELECT * FROM transactions WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &entry, nil
}
