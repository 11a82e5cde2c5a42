package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fardannozami/quitzone/internal/domain"
)

// Store implements every domain repository on one pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const profileColumns = `user_id, name, daily_baseline, objective, reduction_per_week, target_date, cigarette_price, created_at, updated_at`

func (s *Store) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (s *Store) UpsertProfile(ctx context.Context, p *domain.UserProfile) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	var target *string
	if p.TargetDate != nil {
		key := domain.DateKey(*p.TargetDate)
		target = &key
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			daily_baseline = EXCLUDED.daily_baseline,
			objective = EXCLUDED.objective,
			reduction_per_week = EXCLUDED.reduction_per_week,
			target_date = EXCLUDED.target_date,
			cigarette_price = EXCLUDED.cigarette_price,
			updated_at = EXCLUDED.updated_at
	`, p.UserID, p.Name, p.DailyBaseline, string(p.Objective), p.ReductionPerWeek, target, p.CigarettePrice, p.CreatedAt, p.UpdatedAt)
	return err
}

func (s *Store) GetAllProfiles(ctx context.Context) ([]*domain.UserProfile, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var objective string
	var target *time.Time
	err := row.Scan(&p.UserID, &p.Name, &p.DailyBaseline, &objective, &p.ReductionPerWeek,
		&target, &p.CigarettePrice, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Objective = domain.Objective(objective)
	p.TargetDate = target
	return &p, nil
}

func (s *Store) GetRecords(ctx context.Context, userID string) (domain.Records, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, date, actual, goal, goal_met, emotion, created_at
		FROM daily_records WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make(domain.Records)
	for rows.Next() {
		var r domain.DailyRecord
		var date time.Time
		if err := rows.Scan(&r.ID, &r.UserID, &date, &r.Actual, &r.Goal, &r.GoalMet, &r.Emotion, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Date = domain.DateKey(date)
		records[r.Date] = r
	}
	return records, rows.Err()
}

func (s *Store) UpsertRecord(ctx context.Context, r *domain.DailyRecord) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO daily_records (id, user_id, date, actual, goal, goal_met, emotion, created_at)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, date) DO UPDATE SET
			actual = EXCLUDED.actual,
			goal = EXCLUDED.goal,
			goal_met = EXCLUDED.goal_met,
			emotion = EXCLUDED.emotion
	`, r.ID, r.UserID, r.Date, r.Actual, r.Goal, r.GoalMet, r.Emotion, r.CreatedAt)
	return err
}

func (s *Store) GetStreak(ctx context.Context, userID string) (*domain.StreakState, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT user_id, last_connection, count, goal_count, updated_at FROM streaks WHERE user_id = $1
	`, userID)
	st, err := scanStreak(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return st, err
}

func (s *Store) SaveStreak(ctx context.Context, st *domain.StreakState) error {
	st.UpdatedAt = time.Now()
	var last *string
	if st.LastConnection != "" {
		last = &st.LastConnection
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO streaks (user_id, last_connection, count, goal_count, updated_at)
		VALUES ($1, $2::date, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			last_connection = EXCLUDED.last_connection,
			count = EXCLUDED.count,
			goal_count = EXCLUDED.goal_count,
			updated_at = EXCLUDED.updated_at
	`, st.UserID, last, st.Count, st.GoalCount, st.UpdatedAt)
	return err
}

func (s *Store) GetAllStreaks(ctx context.Context) ([]*domain.StreakState, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, last_connection, count, goal_count, updated_at FROM streaks ORDER BY count DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.StreakState
	for rows.Next() {
		st, err := scanStreak(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func scanStreak(row pgx.Row) (*domain.StreakState, error) {
	var st domain.StreakState
	var last *time.Time
	if err := row.Scan(&st.UserID, &last, &st.Count, &st.GoalCount, &st.UpdatedAt); err != nil {
		return nil, err
	}
	if last != nil {
		st.LastConnection = domain.DateKey(*last)
	}
	return &st, nil
}

func (s *Store) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	var st domain.Settings
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, notifications_enabled, reminder_hour, growth_days, currency FROM settings WHERE user_id = $1
	`, userID).Scan(&st.UserID, &st.NotificationsEnabled, &st.ReminderHour, &st.GrowthDays, &st.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) SaveSettings(ctx context.Context, st *domain.Settings) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (user_id, notifications_enabled, reminder_hour, growth_days, currency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			notifications_enabled = EXCLUDED.notifications_enabled,
			reminder_hour = EXCLUDED.reminder_hour,
			growth_days = EXCLUDED.growth_days,
			currency = EXCLUDED.currency
	`, st.UserID, st.NotificationsEnabled, st.ReminderHour, st.GrowthDays, st.Currency)
	return err
}
