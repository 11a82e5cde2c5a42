package domain

import "context"

type Settings struct {
	UserID               string `json:"user_id" db:"user_id"`
	NotificationsEnabled bool   `json:"notifications_enabled" db:"notifications_enabled"`
	ReminderHour         int    `json:"reminder_hour" db:"reminder_hour"` // 0-23, local time
	GrowthDays           int    `json:"growth_days" db:"growth_days"`     // days for the plant to become a tree
	Currency             string `json:"currency" db:"currency"`
}

type SettingsRepository interface {
	GetSettings(ctx context.Context, userID string) (*Settings, error)
	SaveSettings(ctx context.Context, settings *Settings) error
}
