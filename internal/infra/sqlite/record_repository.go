package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
)

type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) GetRecords(ctx context.Context, userID string) (domain.Records, error) {
	query := `SELECT id, user_id, date, actual, goal, goal_met, emotion, created_at FROM daily_records WHERE user_id = ?`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(domain.Records)
	for rows.Next() {
		var rec domain.DailyRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Date, &rec.Actual, &rec.Goal, &rec.GoalMet, &rec.Emotion, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, err
		}
		records[rec.Date] = rec
	}
	return records, rows.Err()
}

// UpsertRecord writes the record for (user, date), replacing any earlier one.
func (r *RecordRepository) UpsertRecord(ctx context.Context, record *domain.DailyRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO daily_records (id, user_id, date, actual, goal, goal_met, emotion, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, date) DO UPDATE SET
			actual = excluded.actual,
			goal = excluded.goal,
			goal_met = excluded.goal_met,
			emotion = excluded.emotion
	`
	_, err := r.db.ExecContext(ctx, query, record.ID, record.UserID, record.Date, record.Actual, record.Goal,
		record.GoalMet, record.Emotion, record.CreatedAt.Format(time.RFC3339))
	return err
}

func (r *RecordRepository) InitTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS daily_records (
			id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			actual INTEGER NOT NULL DEFAULT 0,
			goal INTEGER NOT NULL DEFAULT 0,
			goal_met INTEGER NOT NULL DEFAULT 0,
			emotion TEXT NOT NULL DEFAULT '',
			created_at TEXT,
			PRIMARY KEY (user_id, date)
		);
	`)
	return err
}
