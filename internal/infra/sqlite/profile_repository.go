package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `user_id, name, daily_baseline, objective, reduction_per_week, target_date, cigarette_price, created_at, updated_at`

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`, userID)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *domain.UserProfile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	var target sql.NullString
	if profile.TargetDate != nil {
		target = sql.NullString{String: domain.DateKey(*profile.TargetDate), Valid: true}
	}

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			name = excluded.name,
			daily_baseline = excluded.daily_baseline,
			objective = excluded.objective,
			reduction_per_week = excluded.reduction_per_week,
			target_date = excluded.target_date,
			cigarette_price = excluded.cigarette_price,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.UserID, profile.Name, profile.DailyBaseline, string(profile.Objective), profile.ReductionPerWeek,
		target, profile.CigarettePrice, profile.CreatedAt.Format(time.RFC3339), profile.UpdatedAt.Format(time.RFC3339))
	return err
}

func (r *ProfileRepository) GetAllProfiles(ctx context.Context) ([]*domain.UserProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) InitTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			name TEXT,
			daily_baseline INTEGER NOT NULL DEFAULT 0,
			objective TEXT NOT NULL DEFAULT 'reduce',
			reduction_per_week INTEGER NOT NULL DEFAULT 1,
			target_date TEXT NULL,
			cigarette_price REAL NOT NULL DEFAULT 0,
			created_at TEXT,
			updated_at TEXT
		);
	`)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(s scanner) (*domain.UserProfile, error) {
	var p domain.UserProfile
	var objective, createdAt, updatedAt string
	var target sql.NullString
	if err := s.Scan(&p.UserID, &p.Name, &p.DailyBaseline, &objective, &p.ReductionPerWeek,
		&target, &p.CigarettePrice, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Objective = domain.Objective(objective)

	if target.Valid {
		t, err := domain.ParseDate(target.String, time.UTC)
		if err != nil {
			return nil, err
		}
		p.TargetDate = &t
	}

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
