package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Kgee7/EarnBull/internal/model"
)

type GoalStore interface {
	GetGoals(ctx context.Context, userID int64) ([]model.Goal, error)
	ReplaceGoals(ctx context.Context, userID int64, goals []model.Goal) error
}

type GoalService struct {
	store GoalStore
}

func NewGoalService(store GoalStore) *GoalService {
	return &GoalService{store: store}
}

type GoalInput struct {
	Name  string `json:"name"`
	Steps int64  `json:"steps"`
}

// UpdateGoals replaces the user's goal ladder. Rewards are derived here from
// the step targets (reward = steps/100) so callers cannot submit their own.
func (s *GoalService) UpdateGoals(ctx context.Context, userID int64, inputs []GoalInput) ([]model.Goal, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one goal required", ErrInvalidAmount)
	}

	seen := make(map[string]bool, len(inputs))
	goals := make([]model.Goal, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: goal name required", ErrInvalidAmount)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate goal name %q", ErrInvalidAmount, name)
		}
		seen[name] = true
		if in.Steps < 0 {
			return nil, fmt.Errorf("%w: goal steps cannot be negative", ErrInvalidAmount)
		}
		goals = append(goals, model.Goal{
			UserID: userID,
			Name:   name,
			Steps:  in.Steps,
			Reward: model.RewardForSteps(in.Steps),
		})
	}

	if err := s.store.ReplaceGoals(ctx, userID, goals); err != nil {
		return nil, err
	}
	return s.store.GetGoals(ctx, userID)
}

func (s *GoalService) GetGoals(ctx context.Context, userID int64) ([]model.Goal, error) {
	return s.store.GetGoals(ctx, userID)
}
