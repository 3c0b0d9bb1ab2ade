package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kgee7/EarnBull/internal/logger"
	"github.com/Kgee7/EarnBull/internal/model"
	"github.com/Kgee7/EarnBull/internal/momo"
	"github.com/Kgee7/EarnBull/internal/repository"
)

// MinWithdrawalUSD gates withdrawals: the profile must hold at least this
// much USD before payouts unlock.
const MinWithdrawalUSD = 1.0

var momoNumberPattern = regexp.MustCompile(`^\d{10}$`)

type PayoutGateway interface {
	SubmitPayout(ctx context.Context, req momo.PayoutRequest) (*momo.PayoutResponse, error)
}

type WithdrawalStore interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	CreateWithdrawal(ctx context.Context, w *model.Withdrawal) error
	MarkWithdrawalFailed(ctx context.Context, id uuid.UUID, reason string) error
	CommitWithdrawal(ctx context.Context, w *model.Withdrawal, providerTxID, description string) (*model.Transaction, error)
	GetUserWithdrawals(ctx context.Context, userID int64) ([]model.Withdrawal, error)
}

type WithdrawalService struct {
	store   WithdrawalStore
	gateway PayoutGateway
	rates   RateSource
}

func NewWithdrawalService(store WithdrawalStore, gateway PayoutGateway, rates RateSource) *WithdrawalService {
	return &WithdrawalService{store: store, gateway: gateway, rates: rates}
}

// Withdraw pays ghsAmount to a MoMo number. A pending audit row is persisted
// before the gateway call; the GHS debit, the ledger entry and the completed
// status commit as one unit only after the gateway confirms. A transport
// failure leaves the row pending and the balance untouched.
func (s *WithdrawalService) Withdraw(ctx context.Context, userID int64, ghsAmount float64, momoNumber string) (*model.Withdrawal, error) {
	if ghsAmount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}
	if !momoNumberPattern.MatchString(momoNumber) {
		return nil, fmt.Errorf("%w: MoMo number must be 10 digits", ErrInvalidRecipient)
	}

	rate, err := s.rates.USDToGHS(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRateUnavailable, err)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.USDBalance < MinWithdrawalUSD {
		return nil, fmt.Errorf("%w: hold at least $%.2f USD to withdraw", ErrNotEligible, MinWithdrawalUSD)
	}
	if ghsAmount > user.GHSBalance {
		return nil, fmt.Errorf("%w: GHS %g exceeds balance of GHS %g", ErrInvalidAmount, ghsAmount, user.GHSBalance)
	}

	w := &model.Withdrawal{
		ID:             uuid.New(),
		UserID:         userID,
		AmountGHS:      ghsAmount,
		AmountUSD:      ghsAmount / rate.Value,
		ExchangeRate:   rate.Value,
		MomoNumber:     momoNumber,
		Status:         model.WithdrawalStatusPending,
		IdempotencyKey: fmt.Sprintf("wd-%d-%d", userID, time.Now().UnixNano()),
	}
	if err := s.store.CreateWithdrawal(ctx, w); err != nil {
		return nil, err
	}

	resp, err := s.gateway.SubmitPayout(ctx, momo.PayoutRequest{
		Amount:         ghsAmount,
		Currency:       string(model.CurrencyGHS),
		Recipient:      momoNumber,
		IdempotencyKey: w.IdempotencyKey,
		Note:           "EarnBull withdrawal",
	})
	if err != nil {
		// Outcome unknown. The row stays pending for reconciliation and no
		// balance is debited.
		logger.Get().Error("payout outcome unknown",
			zap.String("withdrawal_id", w.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrPayoutUnresolved, err)
	}

	if !resp.Success {
		if err := s.store.MarkWithdrawalFailed(ctx, w.ID, resp.Message); err != nil {
			logger.Get().Error("failed to mark withdrawal failed",
				zap.String("withdrawal_id", w.ID.String()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("%w: %s", ErrWithdrawalDeclined, resp.Message)
	}

	description := fmt.Sprintf("Withdrawal to %s", momoNumber)
	if _, err := s.store.CommitWithdrawal(ctx, w, resp.TransactionID, description); err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			// A racing debit consumed the balance between the precheck and
			// the commit. The payout already left; flag the row for manual
			// reconciliation.
			reason := "balance consumed by concurrent operation"
			if merr := s.store.MarkWithdrawalFailed(ctx, w.ID, reason); merr != nil {
				logger.Get().Error("failed to mark conflicted withdrawal",
					zap.String("withdrawal_id", w.ID.String()),
					zap.Error(merr),
				)
			}
			return nil, fmt.Errorf("%w: %s", ErrStorageConflict, reason)
		}
		return nil, err
	}

	logger.Get().Info("withdrawal completed",
		zap.String("withdrawal_id", w.ID.String()),
		zap.Float64("amount_ghs", ghsAmount),
	)
	return w, nil
}

// History returns the user's payout attempts, most recent first.
func (s *WithdrawalService) History(ctx context.Context, userID int64) ([]model.Withdrawal, error) {
	return s.store.GetUserWithdrawals(ctx, userID)
}
