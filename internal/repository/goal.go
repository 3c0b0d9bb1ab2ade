package repository

import (
	"context"

	"github.com/Kgee7/EarnBull/internal/model"
)

func (r *Repository) GetGoals(ctx context.Context, userID int64) ([]model.Goal, error) {
	var goals []model.Goal
	err := r.db.SelectContext(ctx, &goals,
		"SELECT * FROM goals WHERE user_id = $1 ORDER BY steps ASC", userID)
	return goals, err
}

// ReplaceGoals swaps a user's goal ladder in one transaction.
func (r *Repository) ReplaceGoals(ctx context.Context, userID int64, goals []model.Goal) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM goals WHERE user_id = $1", userID); err != nil {
		return err
	}

	for i := range goals {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO goals (user_id, name, steps, reward)
			VALUES ($1, $2, $3, $4)`,
			userID, goals[i].Name, goals[i].Steps, goals[i].Reward)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
