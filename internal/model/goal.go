package model

import (
	"time"

	"github.com/google/uuid"
)

// StepsPerCoin is the goal-reward derivation: reward = steps / 100.
const StepsPerCoin = 100

type Goal struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Steps     int64     `json:"steps" db:"steps"`
	Reward    int64     `json:"reward" db:"reward"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// RewardForSteps derives the Bull Coin reward for a goal target.
func RewardForSteps(steps int64) int64 {
	if steps <= 0 {
		return 0
	}
	return steps / StepsPerCoin
}

// DefaultGoals is the ladder every new profile starts with.
func DefaultGoals() []Goal {
	return []Goal{
		{Name: "Bronze", Steps: 2000, Reward: RewardForSteps(2000)},
		{Name: "Silver", Steps: 5000, Reward: RewardForSteps(5000)},
		{Name: "Gold", Steps: 10000, Reward: RewardForSteps(10000)},
	}
}
