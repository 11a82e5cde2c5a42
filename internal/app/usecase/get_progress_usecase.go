package usecase

import (
	"context"
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/progress"
)

type ProgressReport struct {
	Profile        domain.UserProfile   `json:"profile"`
	Summary        progress.Summary     `json:"summary"`
	Growth         progress.GrowthState `json:"-"`
	GrowthName     string               `json:"growth"`
	GrowthProgress float64              `json:"growth_progress"`
	GrowthDays     int                  `json:"growth_days"`
	Currency       string               `json:"currency"`
	Reached        []progress.Milestone `json:"milestones_reached"`
	NextMilestone  *progress.Milestone  `json:"next_milestone,omitempty"`
}

type GetProgressUsecase struct {
	profiles domain.ProfileRepository
	records  domain.RecordRepository
	settings *SettingsManager
}

func NewGetProgressUsecase(profiles domain.ProfileRepository, records domain.RecordRepository, settings *SettingsManager) *GetProgressUsecase {
	return &GetProgressUsecase{profiles: profiles, records: records, settings: settings}
}

// Execute builds the progress screen of a user for today. The plant grows
// with the connection streak; milestones follow the smoke-free run.
func (uc *GetProgressUsecase) Execute(ctx context.Context, userID string) (*ProgressReport, error) {
	profile, err := uc.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}

	records, err := uc.records.GetRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings, err := uc.settings.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := progress.Summarize(*profile, records, time.Now())
	growth := progress.Growth(summary.ConnectionDays, settings.GrowthDays)
	reached, next := progress.Milestones(summary.SmokeFreeRun)

	return &ProgressReport{
		Profile:        *profile,
		Summary:        summary,
		Growth:         growth,
		GrowthName:     growth.String(),
		GrowthProgress: progress.GrowthProgress(summary.ConnectionDays, settings.GrowthDays),
		GrowthDays:     settings.GrowthDays,
		Currency:       settings.Currency,
		Reached:        reached,
		NextMilestone:  next,
	}, nil
}
