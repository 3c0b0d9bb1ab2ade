package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Kgee7/EarnBull/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

func (r *Repository) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM users WHERE google_id = $1", googleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts the profile with zero balances and seeds the default
// goal ladder in the same transaction.
func (r *Repository) CreateUser(ctx context.Context, user *model.User, goals []model.Goal) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (google_id, email, display_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowContext(ctx, query,
		user.GoogleID,
		user.Email,
		user.DisplayName,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range goals {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO goals (user_id, name, steps, reward)
			VALUES ($1, $2, $3, $4)`,
			user.ID, goals[i].Name, goals[i].Steps, goals[i].Reward)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users SET
			email = $2,
			display_name = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.DisplayName,
	)
	return err
}
