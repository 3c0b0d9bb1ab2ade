package model

import (
	"time"
)

type User struct {
	ID          int64     `json:"id" db:"id"`
	GoogleID    string    `json:"google_id" db:"google_id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"display_name" db:"display_name"`
	BullCoins   float64   `json:"bull_coin_balance" db:"bull_coins"`
	USDBalance  float64   `json:"usd_balance" db:"usd_balance"`
	GHSBalance  float64   `json:"ghs_balance" db:"ghs_balance"`
	Steps       int64     `json:"cumulative_steps" db:"steps"` // latest known step count for the current day
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type UserWithGoals struct {
	User
	Goals []Goal `json:"daily_goals"`
}
