package sqlite

import (
	"context"
	"database/sql"

	"github.com/fardannozami/quitzone/internal/domain"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	query := `SELECT user_id, notifications_enabled, reminder_hour, growth_days, currency FROM settings WHERE user_id = ?`
	var s domain.Settings
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&s.UserID, &s.NotificationsEnabled, &s.ReminderHour, &s.GrowthDays, &s.Currency)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepository) SaveSettings(ctx context.Context, s *domain.Settings) error {
	query := `
		INSERT INTO settings (user_id, notifications_enabled, reminder_hour, growth_days, currency)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			notifications_enabled = excluded.notifications_enabled,
			reminder_hour = excluded.reminder_hour,
			growth_days = excluded.growth_days,
			currency = excluded.currency
	`
	_, err := r.db.ExecContext(ctx, query, s.UserID, s.NotificationsEnabled, s.ReminderHour, s.GrowthDays, s.Currency)
	return err
}

func (r *SettingsRepository) InitTable(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS settings (
			user_id TEXT PRIMARY KEY,
			notifications_enabled INTEGER NOT NULL DEFAULT 1,
			reminder_hour INTEGER NOT NULL DEFAULT 20,
			growth_days INTEGER NOT NULL DEFAULT 60,
			currency TEXT NOT NULL DEFAULT 'Rp'
		);
	`)
	return err
}
