package usecase

import (
	"context"

	"github.com/fardannozami/quitzone/internal/domain"
)

// SettingsInput carries a partial update; nil fields are left unchanged.
type SettingsInput struct {
	NotificationsEnabled *bool   `json:"notifications_enabled"`
	ReminderHour         *int    `json:"reminder_hour"`
	GrowthDays           *int    `json:"growth_days"`
	Currency             *string `json:"currency"`
}

type UpdateSettingsUsecase struct {
	settings *SettingsManager
}

func NewUpdateSettingsUsecase(settings *SettingsManager) *UpdateSettingsUsecase {
	return &UpdateSettingsUsecase{settings: settings}
}

func (uc *UpdateSettingsUsecase) Execute(ctx context.Context, userID string, in SettingsInput) (*domain.Settings, error) {
	s, err := uc.settings.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.NotificationsEnabled != nil {
		s.NotificationsEnabled = *in.NotificationsEnabled
	}
	if in.ReminderHour != nil {
		s.ReminderHour = *in.ReminderHour
	}
	if in.GrowthDays != nil {
		s.GrowthDays = *in.GrowthDays
	}
	if in.Currency != nil {
		s.Currency = *in.Currency
	}

	if err := uc.settings.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
