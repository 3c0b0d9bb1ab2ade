package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Kgee7/EarnBull/internal/logger"
	"github.com/Kgee7/EarnBull/internal/model"
	"github.com/Kgee7/EarnBull/internal/repository"
)

// CoinsPerThousandSteps is the Bull Coin reward granted per crossed
// thousand-step milestone.
const CoinsPerThousandSteps = 10

// MilestoneReward returns the Bull Coin delta for moving from previousSteps
// to newSteps. The result is negative when newSteps < previousSteps (a
// simulated undo): the caller reclaims coins rather than ignoring the move.
func MilestoneReward(previousSteps, newSteps, coinsPerThousand int64) int64 {
	return (newSteps/1000 - previousSteps/1000) * coinsPerThousand
}

type RewardStore interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	UpdateSteps(ctx context.Context, userID, prevSteps, newSteps int64) error
	ApplyStepReward(ctx context.Context, userID int64, prevSteps, newSteps int64, reward float64, description string) (*model.Transaction, error)
}

type RewardService struct {
	store RewardStore
}

func NewRewardService(store RewardStore) *RewardService {
	return &RewardService{store: store}
}

// RecordSteps applies a step-count update. When one or more thousand-step
// milestones are crossed the Bull Coin balance and the earn ledger entry are
// committed together with the new step count; otherwise only the step count
// moves. The returned transaction is nil when no reward was due. The commit
// is conditional on the step count the reward was computed from, so a racing
// update fails with ErrStorageConflict instead of crediting the same
// milestones twice.
func (s *RewardService) RecordSteps(ctx context.Context, userID, newSteps int64) (*model.Transaction, error) {
	if newSteps < 0 {
		return nil, fmt.Errorf("%w: step count cannot be negative", ErrInvalidAmount)
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if newSteps == user.Steps {
		return nil, nil
	}

	reward := MilestoneReward(user.Steps, newSteps, CoinsPerThousandSteps)
	if reward == 0 {
		if err := s.store.UpdateSteps(ctx, userID, user.Steps, newSteps); err != nil {
			if errors.Is(err, repository.ErrConcurrentUpdate) {
				return nil, fmt.Errorf("%w: step count changed, retry", ErrStorageConflict)
			}
			return nil, err
		}
		return nil, nil
	}

	var description string
	if reward > 0 {
		crossed := newSteps/1000 - user.Steps/1000
		description = fmt.Sprintf("Walked %d steps", crossed*1000)
	} else {
		description = fmt.Sprintf("Step count corrected to %d", newSteps)
	}

	entry, err := s.store.ApplyStepReward(ctx, userID, user.Steps, newSteps, float64(reward), description)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, fmt.Errorf("%w: reclaim exceeds coin balance", ErrInvalidAmount)
		}
		if errors.Is(err, repository.ErrConcurrentUpdate) {
			return nil, fmt.Errorf("%w: step count changed, retry", ErrStorageConflict)
		}
		return nil, err
	}

	logger.Get().Info("step reward applied",
		zap.Int64("user_id", userID),
		zap.Int64("steps", newSteps),
		zap.Int64("reward", reward),
	)
	return entry, nil
}
