package usecase

import (
	"context"
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/progress"
)

const (
	DefaultChartDays = 7
	MaxChartDays     = 365
)

type ChartResult struct {
	Days   int             `json:"days"`
	Series progress.Series `json:"series"`
}

type GetChartUsecase struct {
	profiles domain.ProfileRepository
	records  domain.RecordRepository
}

func NewGetChartUsecase(profiles domain.ProfileRepository, records domain.RecordRepository) *GetChartUsecase {
	return &GetChartUsecase{profiles: profiles, records: records}
}

// Execute returns the goal and consumption series over days days. Zero picks
// DefaultChartDays; larger windows are capped at MaxChartDays.
func (uc *GetChartUsecase) Execute(ctx context.Context, userID string, days int) (*ChartResult, error) {
	if days < 0 {
		return nil, domain.ErrInvalidCount
	}
	if days == 0 {
		days = DefaultChartDays
	}
	days = min(days, MaxChartDays)

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

	return &ChartResult{
		Days:   days,
		Series: progress.ChartSeries(*profile, records, days, time.Now()),
	}, nil
}
