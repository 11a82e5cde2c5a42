package domain

import (
	"context"
	"time"
)

type Objective string

const (
	// ObjectiveQuit stops smoking completely, optionally from TargetDate on.
	ObjectiveQuit Objective = "quit"
	// ObjectiveReduce removes ReductionPerWeek cigarettes from the daily goal every week.
	ObjectiveReduce Objective = "reduce"
)

func (o Objective) Valid() bool {
	return o == ObjectiveQuit || o == ObjectiveReduce
}

type UserProfile struct {
	UserID           string     `json:"user_id" db:"user_id"`
	Name             string     `json:"name" db:"name"`
	DailyBaseline    int        `json:"daily_baseline" db:"daily_baseline"`
	Objective        Objective  `json:"objective" db:"objective"`
	ReductionPerWeek int        `json:"reduction_per_week" db:"reduction_per_week"`
	TargetDate       *time.Time `json:"target_date,omitempty" db:"target_date"`
	CigarettePrice   float64    `json:"cigarette_price" db:"cigarette_price"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (*UserProfile, error)
	UpsertProfile(ctx context.Context, profile *UserProfile) error
	GetAllProfiles(ctx context.Context) ([]*UserProfile, error)
}
