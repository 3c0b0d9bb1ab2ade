package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kgee7/EarnBull/internal/model"
	"github.com/Kgee7/EarnBull/internal/momo"
	"github.com/Kgee7/EarnBull/internal/repository"
)

// memStore emulates the repository's atomic balance-plus-ledger commits with
// a single mutex standing in for the row lock.
type memStore struct {
	mu          sync.Mutex
	user        model.User
	goals       []model.Goal
	ledger      []model.Transaction
	withdrawals map[uuid.UUID]*model.Withdrawal

	failCommit   error  // injected storage failure for mutating calls
	afterGetUser func() // runs once after a GetUser read, outside the lock

	lastListLimit  int
	lastListOffset int
}

func newMemStore(user model.User) *memStore {
	return &memStore{
		user:        user,
		withdrawals: make(map[uuid.UUID]*model.Withdrawal),
	}
}

func (m *memStore) snapshot() model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *memStore) ledgerLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ledger)
}

func (m *memStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	if id != m.user.ID {
		m.mu.Unlock()
		return nil, repository.ErrUserNotFound
	}
	user := m.user
	m.mu.Unlock()

	if hook := m.afterGetUser; hook != nil {
		m.afterGetUser = nil
		hook()
	}
	return &user, nil
}

func (m *memStore) UpdateSteps(ctx context.Context, userID, prevSteps, newSteps int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCommit != nil {
		return m.failCommit
	}
	if m.user.Steps != prevSteps {
		return fmt.Errorf("%w: steps moved from %d", repository.ErrConcurrentUpdate, prevSteps)
	}
	m.user.Steps = newSteps
	return nil
}

func (m *memStore) ApplyStepReward(ctx context.Context, userID int64, prevSteps, newSteps int64, reward float64, description string) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCommit != nil {
		return nil, m.failCommit
	}
	if m.user.Steps != prevSteps {
		return nil, fmt.Errorf("%w: steps moved from %d to %d", repository.ErrConcurrentUpdate, prevSteps, m.user.Steps)
	}
	after := m.user.BullCoins + reward
	if reward < 0 && after < 0 {
		return nil, fmt.Errorf("%w: have %g, need %g", repository.ErrInsufficientBalance, m.user.BullCoins, -reward)
	}
	m.user.Steps = newSteps
	m.user.BullCoins = after
	return m.append(userID, model.TransactionTypeEarn, reward, model.CurrencyBC, description), nil
}

func (m *memStore) ConvertCoinsToUSD(ctx context.Context, userID int64, bcAmount, usdAmount float64, description string) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCommit != nil {
		return nil, m.failCommit
	}
	if bcAmount > m.user.BullCoins {
		return nil, repository.ErrInsufficientBalance
	}
	m.user.BullCoins -= bcAmount
	m.user.USDBalance += usdAmount
	return m.append(userID, model.TransactionTypeConvertToUSD, -bcAmount, model.CurrencyBC, description), nil
}

func (m *memStore) ConvertUSDToGHS(ctx context.Context, userID int64, usdAmount, ghsAmount float64, description string) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCommit != nil {
		return nil, m.failCommit
	}
	if usdAmount > m.user.USDBalance {
		return nil, repository.ErrInsufficientBalance
	}
	m.user.USDBalance -= usdAmount
	m.user.GHSBalance += ghsAmount
	return m.append(userID, model.TransactionTypeConvertToGHS, -usdAmount, model.CurrencyUSD, description), nil
}

func (m *memStore) CreateWithdrawal(ctx context.Context, w *model.Withdrawal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCommit != nil {
		return m.failCommit
	}
	w.CreatedAt = time.Now()
	stored := *w
	m.withdrawals[w.ID] = &stored
	return nil
}

func (m *memStore) MarkWithdrawalFailed(ctx context.Context, id uuid.UUID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.withdrawals[id]
	if !ok {
		return repository.ErrWithdrawalNotFound
	}
	w.Status = model.WithdrawalStatusFailed
	w.FailureReason = &reason
	return nil
}

func (m *memStore) CommitWithdrawal(ctx context.Context, w *model.Withdrawal, providerTxID, description string) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCommit != nil {
		return nil, m.failCommit
	}
	if w.AmountGHS > m.user.GHSBalance {
		return nil, repository.ErrInsufficientBalance
	}
	m.user.GHSBalance -= w.AmountGHS
	entry := m.append(w.UserID, model.TransactionTypeWithdraw, -w.AmountGHS, model.CurrencyGHS, description)

	now := time.Now()
	w.Status = model.WithdrawalStatusCompleted
	w.ProviderTxID = &providerTxID
	w.CompletedAt = &now
	if stored, ok := m.withdrawals[w.ID]; ok {
		*stored = *w
	}
	return entry, nil
}

func (m *memStore) GetUserWithdrawals(ctx context.Context, userID int64) ([]model.Withdrawal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Withdrawal
	for _, w := range m.withdrawals {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (m *memStore) GetTransactions(ctx context.Context, userID int64, limit, offset int) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastListLimit = limit
	m.lastListOffset = offset

	// Most recent first, the ledger slice is chronological.
	var out []model.Transaction
	for i := len(m.ledger) - 1; i >= 0; i-- {
		out = append(out, m.ledger[i])
	}
	if offset < len(out) {
		out = out[offset:]
	} else {
		out = nil
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) DeleteTransaction(ctx context.Context, userID int64, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ledger {
		if m.ledger[i].ID == id && m.ledger[i].UserID == userID {
			m.ledger = append(m.ledger[:i], m.ledger[i+1:]...)
			return nil
		}
	}
	return repository.ErrTransactionNotFound
}

func (m *memStore) DeleteAllTransactions(ctx context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := int64(len(m.ledger))
	m.ledger = nil
	return deleted, nil
}

func (m *memStore) GetGoals(ctx context.Context, userID int64) ([]model.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Goal(nil), m.goals...), nil
}

func (m *memStore) ReplaceGoals(ctx context.Context, userID int64, goals []model.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCommit != nil {
		return m.failCommit
	}
	m.goals = append([]model.Goal(nil), goals...)
	return nil
}

func (m *memStore) append(userID int64, txType model.TransactionType, amount float64, currency model.Currency, description string) *model.Transaction {
	entry := model.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Currency:    currency,
		Description: description,
		CreatedAt:   time.Now(),
	}
	m.ledger = append(m.ledger, entry)
	return &entry
}

// stubRates is a fixed RateSource.
type stubRates struct {
	rate Rate
	err  error
}

func (s stubRates) USDToGHS(ctx context.Context) (Rate, error) {
	if s.err != nil {
		return Rate{}, s.err
	}
	return s.rate, nil
}

// stubGateway scripts the payout gateway's answer.
type stubGateway struct {
	mu    sync.Mutex
	resp  *momo.PayoutResponse
	err   error
	calls []momo.PayoutRequest
}

func (s *stubGateway) SubmitPayout(ctx context.Context, req momo.PayoutRequest) (*momo.PayoutResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubGateway) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

var errStorageDown = errors.New("storage unavailable")
