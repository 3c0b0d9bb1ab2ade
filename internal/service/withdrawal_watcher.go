package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Kgee7/EarnBull/internal/config"
	"github.com/Kgee7/EarnBull/internal/logger"
	"github.com/Kgee7/EarnBull/internal/model"
	"github.com/Kgee7/EarnBull/internal/repository"
)

// WithdrawalWatcher periodically surfaces payout attempts stuck in pending
// (gateway call never resolved) so operators can reconcile them against the
// provider. It never mutates balances.
type WithdrawalWatcher struct {
	repo *repository.Repository
}

func NewWithdrawalWatcher(repo *repository.Repository) *WithdrawalWatcher {
	return &WithdrawalWatcher{repo: repo}
}

func (w *WithdrawalWatcher) Start(ctx context.Context) {
	logger.Get().Info("withdrawal watcher started",
		zap.Duration("interval", config.PendingWithdrawalCheckInterval))

	ticker := time.NewTicker(config.PendingWithdrawalCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Get().Info("withdrawal watcher stopped")
			return
		case <-ticker.C:
			w.reportStuck(ctx)
		}
	}
}

func (w *WithdrawalWatcher) reportStuck(ctx context.Context) {
	stuck, err := w.repo.GetPendingWithdrawals(ctx, config.PendingWithdrawalMinAge)
	if err != nil {
		logger.Get().Error("failed to list pending withdrawals", zap.Error(err))
		return
	}

	for i := range stuck {
		w.log(&stuck[i])
	}
}

func (w *WithdrawalWatcher) log(withdrawal *model.Withdrawal) {
	logger.Get().Warn("withdrawal pending past threshold, needs reconciliation",
		zap.String("withdrawal_id", withdrawal.ID.String()),
		zap.Int64("user_id", withdrawal.UserID),
		zap.Float64("amount_ghs", withdrawal.AmountGHS),
		zap.String("idempotency_key", withdrawal.IdempotencyKey),
		zap.Time("created_at", withdrawal.CreatedAt),
	)
}
