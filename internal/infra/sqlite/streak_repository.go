package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
)

type StreakRepository struct {
	db *sql.DB
}

func NewStreakRepository(db *sql.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

func (r *StreakRepository) GetStreak(ctx context.Context, userID string) (*domain.StreakState, error) {
	query := `SELECT user_id, last_connection, count, goal_count, updated_at FROM streaks WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var st domain.StreakState
	var updatedAt string
	err := row.Scan(&st.UserID, &st.LastConnection, &st.Count, &st.GoalCount, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	st.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *StreakRepository) SaveStreak(ctx context.Context, state *domain.StreakState) error {
	state.UpdatedAt = time.Now()
	query := `
		INSERT INTO streaks (user_id, last_connection, count, goal_count, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			last_connection = excluded.last_connection,
			count = excluded.count,
			goal_count = excluded.goal_count,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, state.UserID, state.LastConnection, state.Count, state.GoalCount, state.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *StreakRepository) GetAllStreaks(ctx context.Context) ([]*domain.StreakState, error) {
	query := `SELECT user_id, last_connection, count, goal_count, updated_at FROM streaks ORDER BY count DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []*domain.StreakState
	for rows.Next() {
		var st domain.StreakState
		var updatedAt string
		if err := rows.Scan(&st.UserID, &st.LastConnection, &st.Count, &st.GoalCount, &updatedAt); err != nil {
			return nil, err
		}
		st.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, err
		}
		states = append(states, &st)
	}
	return states, rows.Err()
}

func (r *StreakRepository) InitTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS streaks (
			user_id TEXT PRIMARY KEY,
			last_connection TEXT,
			count INTEGER DEFAULT 0,
			goal_count INTEGER DEFAULT 0,
			updated_at TEXT
		);
	`)
	return err
}
