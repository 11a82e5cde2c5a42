package domain

import (
	"context"
	"time"
)

// StreakState is a cached snapshot of the streaks derived from a user's
// records. It is recomputed on every write and never incremented in place.
type StreakState struct {
	UserID         string    `json:"user_id" db:"user_id"`
	LastConnection string    `json:"last_connection" db:"last_connection"`
	Count          int       `json:"count" db:"count"`
	GoalCount      int       `json:"goal_count" db:"goal_count"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type StreakRepository interface {
	GetStreak(ctx context.Context, userID string) (*StreakState, error)
	SaveStreak(ctx context.Context, state *StreakState) error
	GetAllStreaks(ctx context.Context) ([]*StreakState, error)
}
