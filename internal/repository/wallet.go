package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Kgee7/EarnBull/internal/model"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrConcurrentUpdate means the step count moved between the caller's
	// read and the commit; the caller must re-read and recompute its delta.
	ErrConcurrentUpdate = errors.New("concurrent update detected")
)

// balanceColumn guards against interpolating anything but a known column
// name into the wallet queries.
type balanceColumn string

const (
	columnBullCoins  balanceColumn = "bull_coins"
	columnUSDBalance balanceColumn = "usd_balance"
	columnGHSBalance balanceColumn = "ghs_balance"
)

// ApplyStepReward updates the cumulative step count, adjusts the Bull Coin
// balance by reward (signed; negative reclaims a simulated undo) and appends
// the earn ledger entry, all in one transaction. The reward was computed from
// prevSteps, so the row is re-checked under the lock: if the step count moved
// since that read the commit fails with ErrConcurrentUpdate instead of
// crediting a stale delta twice. A reclaim that would push the balance below
// zero fails with ErrInsufficientBalance and changes nothing.
func (r *Repository) ApplyStepReward(ctx context.Context, userID int64, prevSteps, newSteps int64, reward float64, description string) (*model.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var current struct {
		Steps     int64   `db:"steps"`
		BullCoins float64 `db:"bull_coins"`
	}
	err = tx.GetContext(ctx, &current, "SELECT steps, bull_coins FROM users WHERE id = $1 FOR UPDATE", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	if current.Steps != prevSteps {
		return nil, fmt.Errorf("%w: steps moved from %d to %d", ErrConcurrentUpdate, prevSteps, current.Steps)
	}

	after := current.BullCoins + reward
	if reward < 0 && after < 0 {
		return nil, fmt.Errorf("%w: have %.9f, need %.9f", ErrInsufficientBalance, current.BullCoins, -reward)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE users SET bull_coins = $1, steps = $2, updated_at = NOW() WHERE id = $3",
		after, newSteps, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	entry, err := insertTransaction(ctx, tx, userID, model.TransactionTypeEarn, reward, model.CurrencyBC, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

// UpdateSteps moves the cumulative step count without touching balances.
// Used when a step update crosses no milestone. The write is conditional on
// prevSteps so a racing update surfaces as ErrConcurrentUpdate rather than a
// silent overwrite.
func (r *Repository) UpdateSteps(ctx context.Context, userID, prevSteps, newSteps int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET steps = $1, updated_at = NOW() WHERE id = $2 AND steps = $3",
		newSteps, userID, prevSteps)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: steps moved from %d", ErrConcurrentUpdate, prevSteps)
	}
	return nil
}

// ConvertCoinsToUSD debits Bull Coins, credits the USD balance and appends
// the conversion ledger entry atomically.
func (r *Repository) ConvertCoinsToUSD(ctx context.Context, userID int64, bcAmount, usdAmount float64, description string) (*model.Transaction, error) {
	return r.convert(ctx, userID, columnBullCoins, bcAmount, columnUSDBalance, usdAmount,
		model.TransactionTypeConvertToUSD, -bcAmount, model.CurrencyBC, description)
}

// ConvertUSDToGHS debits the USD balance, credits the GHS balance and
// appends the conversion ledger entry atomically.
func (r *Repository) ConvertUSDToGHS(ctx context.Context, userID int64, usdAmount, ghsAmount float64, description string) (*model.Transaction, error) {
	return r.convert(ctx, userID, columnUSDBalance, usdAmount, columnGHSBalance, ghsAmount,
		model.TransactionTypeConvertToGHS, -usdAmount, model.CurrencyUSD, description)
}

func (r *Repository) convert(ctx context.Context, userID int64, debitCol balanceColumn, debit float64, creditCol balanceColumn, credit float64, txType model.TransactionType, ledgerAmount float64, currency model.Currency, description string) (*model.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var available float64
	err = tx.GetContext(ctx, &available,
		fmt.Sprintf("SELECT %s FROM users WHERE id = $1 FOR UPDATE", debitCol), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	if debit > available {
		return nil, fmt.Errorf("%w: have %.9f, need %.9f", ErrInsufficientBalance, available, debit)
	}

	_, err = tx.ExecContext(ctx,
		fmt.Sprintf("UPDATE users SET %s = %s - $1, %s = %s + $2, updated_at = NOW() WHERE id = $3",
			debitCol, debitCol, creditCol, creditCol),
		debit, credit, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update balances: %w", err)
	}

	entry, err := insertTransaction(ctx, tx, userID, txType, ledgerAmount, currency, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

// CommitWithdrawal finalizes a gateway-confirmed payout: debits the GHS
// balance, appends the withdraw ledger entry and flips the withdrawal row to
// completed with the provider's transaction id, atomically. The balance is
// re-checked under the row lock so a racing withdrawal cannot overdraw.
func (r *Repository) CommitWithdrawal(ctx context.Context, w *model.Withdrawal, providerTxID, description string) (*model.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var available float64
	err = tx.GetContext(ctx, &available, "SELECT ghs_balance FROM users WHERE id = $1 FOR UPDATE", w.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	if w.AmountGHS > available {
		return nil, fmt.Errorf("%w: have %.9f, need %.9f", ErrInsufficientBalance, available, w.AmountGHS)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE users SET ghs_balance = ghs_balance - $1, updated_at = NOW() WHERE id = $2",
		w.AmountGHS, w.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	entry, err := insertTransaction(ctx, tx, w.UserID, model.TransactionTypeWithdraw, -w.AmountGHS, model.CurrencyGHS, description)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		UPDATE withdrawals SET status = $2, provider_tx_id = $3, completed_at = $4
		WHERE id = $1`,
		w.ID, model.WithdrawalStatusCompleted, providerTxID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to update withdrawal: %w", err)
	}
	w.Status = model.WithdrawalStatusCompleted
	w.ProviderTxID = &providerTxID
	w.CompletedAt = &now

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return entry, nil
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, userID int64, txType model.TransactionType, amount float64, currency model.Currency, description string) (*model.Transaction, error) {
	entry := &model.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Currency:    currency,
		Description: description,
	}

	err := tx.QueryRowContext(ctx, `
		INSERT INTO transactions (id, user_id, type, amount, currency, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		entry.ID, entry.UserID, entry.Type, entry.Amount, entry.Currency, entry.Description,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction record: %w", err)
	}
	return entry, nil
}
