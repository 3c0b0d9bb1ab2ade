package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Kgee7/EarnBull/internal/model"
)

// DefaultLedgerLimit bounds a ledger page.
const DefaultLedgerLimit = 50

type LedgerStore interface {
	GetTransactions(ctx context.Context, userID int64, limit, offset int) ([]model.Transaction, error)
	DeleteTransaction(ctx context.Context, userID int64, id uuid.UUID) error
	DeleteAllTransactions(ctx context.Context, userID int64) (int64, error)
}

type LedgerService struct {
	store LedgerStore
}

func NewLedgerService(store LedgerStore) *LedgerService {
	return &LedgerService{store: store}
}

// List returns the user's transaction history, most recent first, capped at
// DefaultLedgerLimit.
func (s *LedgerService) List(ctx context.Context, userID int64, limit, offset int) ([]model.Transaction, error) {
	if limit <= 0 || limit > DefaultLedgerLimit {
		limit = DefaultLedgerLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.GetTransactions(ctx, userID, limit, offset)
}

// Delete removes one ledger entry. The balance effect of the entry is not
// reversed; this is an audit-trail edit only.
func (s *LedgerService) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	return s.store.DeleteTransaction(ctx, userID, id)
}

// DeleteAll clears the user's ledger without touching balances.
func (s *LedgerService) DeleteAll(ctx context.Context, userID int64) (int64, error) {
	return s.store.DeleteAllTransactions(ctx, userID)
}
