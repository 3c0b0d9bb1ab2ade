package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kgee7/EarnBull/internal/model"
)

func TestRewardForSteps(t *testing.T) {
	assert.Equal(t, int64(20), model.RewardForSteps(2000))
	assert.Equal(t, int64(50), model.RewardForSteps(5000))
	assert.Equal(t, int64(100), model.RewardForSteps(10000))
	assert.Equal(t, int64(0), model.RewardForSteps(99))
	assert.Equal(t, int64(1), model.RewardForSteps(150))
	assert.Equal(t, int64(0), model.RewardForSteps(-500))
}

func TestUpdateGoals_DerivesRewards(t *testing.T) {
	store := newMemStore(model.User{ID: 1})
	svc := NewGoalService(store)

	goals, err := svc.UpdateGoals(context.Background(), 1, []GoalInput{
		{Name: "Bronze", Steps: 2000},
		{Name: "Platinum", Steps: 15000},
	})
	require.NoError(t, err)
	require.Len(t, goals, 2)

	// Rewards come from the step targets, never from the caller.
	assert.Equal(t, int64(20), goals[0].Reward)
	assert.Equal(t, int64(150), goals[1].Reward)
}

func TestUpdateGoals_Validation(t *testing.T) {
	store := newMemStore(model.User{ID: 1})
	svc := NewGoalService(store)

	tests := []struct {
		name   string
		inputs []GoalInput
	}{
		{"empty ladder", nil},
		{"blank name", []GoalInput{{Name: "  ", Steps: 1000}}},
		{"duplicate name", []GoalInput{{Name: "Bronze", Steps: 1000}, {Name: "Bronze", Steps: 2000}}},
		{"negative steps", []GoalInput{{Name: "Bronze", Steps: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateGoals(context.Background(), 1, tt.inputs)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}
}

func TestDefaultGoals(t *testing.T) {
	goals := model.DefaultGoals()
	require.Len(t, goals, 3)
	for _, g := range goals {
		assert.Equal(t, model.RewardForSteps(g.Steps), g.Reward)
	}
}
