package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/progress"
)

// SettingsDefaults are applied to users who never saved settings.
type SettingsDefaults struct {
	NotificationsEnabled bool
	ReminderHour         int
	GrowthDays           int
	Currency             string
}

// SettingsManager loads and saves per-user settings. It is built once in
// main and passed to the usecases that need it.
type SettingsManager struct {
	repo     domain.SettingsRepository
	defaults SettingsDefaults
}

func NewSettingsManager(repo domain.SettingsRepository, defaults SettingsDefaults) *SettingsManager {
	if defaults.GrowthDays <= 0 {
		defaults.GrowthDays = progress.DefaultGrowthDays
	}
	if defaults.Currency == "" {
		defaults.Currency = "Rp"
	}
	if defaults.ReminderHour < 0 || defaults.ReminderHour > 23 {
		defaults.ReminderHour = 20
	}
	return &SettingsManager{repo: repo, defaults: defaults}
}

func (m *SettingsManager) Load(ctx context.Context, userID string) (*domain.Settings, error) {
	s, err := m.repo.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &domain.Settings{
			UserID:               userID,
			NotificationsEnabled: m.defaults.NotificationsEnabled,
			ReminderHour:         m.defaults.ReminderHour,
			GrowthDays:           m.defaults.GrowthDays,
			Currency:             m.defaults.Currency,
		}, nil
	}
	m.normalize(s)
	return s, nil
}

// Save rejects reminder hours outside 0-23 and fills empty fields from the
// defaults before writing.
func (m *SettingsManager) Save(ctx context.Context, s *domain.Settings) error {
	if s.ReminderHour < 0 || s.ReminderHour > 23 {
		return fmt.Errorf("%w: reminder hour %d", domain.ErrInvalidSettings, s.ReminderHour)
	}
	if s.GrowthDays < 0 {
		return fmt.Errorf("%w: growth days %d", domain.ErrInvalidSettings, s.GrowthDays)
	}
	m.normalize(s)
	return m.repo.SaveSettings(ctx, s)
}

func (m *SettingsManager) normalize(s *domain.Settings) {
	if s.GrowthDays <= 0 {
		s.GrowthDays = m.defaults.GrowthDays
	}
	s.Currency = strings.TrimSpace(s.Currency)
	if s.Currency == "" {
		s.Currency = m.defaults.Currency
	}
	if s.ReminderHour < 0 || s.ReminderHour > 23 {
		s.ReminderHour = m.defaults.ReminderHour
	}
}
