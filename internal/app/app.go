// Package app assembles repositories and usecases from the configuration.
// Both binaries build their dependencies through it.
package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/fardannozami/quitzone/internal/app/usecase"
	"github.com/fardannozami/quitzone/internal/config"
	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/infra/memory"
	"github.com/fardannozami/quitzone/internal/infra/postgres"
	"github.com/fardannozami/quitzone/internal/infra/sqlite"
)

type Repositories struct {
	Profiles domain.ProfileRepository
	Records  domain.RecordRepository
	Streaks  domain.StreakRepository
	Settings domain.SettingsRepository
}

// OpenRepositories connects the storage selected by STORAGE_DRIVER and
// migrates it. The returned func closes the connection.
func OpenRepositories(ctx context.Context, cfg *config.Config) (*Repositories, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		store := memory.NewStore()
		log.Warn("Using in-memory storage, data is lost on exit")
		return &Repositories{Profiles: store, Records: store, Streaks: store, Settings: store}, func() {}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		store := postgres.NewStore(pool)
		return &Repositories{Profiles: store, Records: store, Streaks: store, Settings: store}, pool.Close, nil

	default:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		return &Repositories{
			Profiles: sqlite.NewProfileRepository(db),
			Records:  sqlite.NewRecordRepository(db),
			Streaks:  sqlite.NewStreakRepository(db),
			Settings: sqlite.NewSettingsRepository(db),
		}, func() { db.Close() }, nil
	}
}

type Usecases struct {
	Log            *usecase.LogConsumptionUsecase
	SetProfile     *usecase.SetProfileUsecase
	SetPrice       *usecase.SetPriceUsecase
	Progress       *usecase.GetProgressUsecase
	Chart          *usecase.GetChartUsecase
	Records        *usecase.GetRecordsUsecase
	Leaderboard    *usecase.GetLeaderboardUsecase
	UpdateSettings *usecase.UpdateSettingsUsecase
	SendReminders  *usecase.SendRemindersUsecase
	Settings       *usecase.SettingsManager
	HandleMessage  *usecase.HandleMessageUsecase
}

func NewUsecases(repos *Repositories, cfg *config.Config) *Usecases {
	settings := usecase.NewSettingsManager(repos.Settings, usecase.SettingsDefaults{
		NotificationsEnabled: true,
		ReminderHour:         cfg.DefaultReminderHour,
		GrowthDays:           cfg.GrowthDays,
		Currency:             cfg.DefaultCurrency,
	})

	uc := &Usecases{
		Log:            usecase.NewLogConsumptionUsecase(repos.Profiles, repos.Records, repos.Streaks),
		SetProfile:     usecase.NewSetProfileUsecase(repos.Profiles, cfg.DefaultCigarettePrice),
		SetPrice:       usecase.NewSetPriceUsecase(repos.Profiles),
		Progress:       usecase.NewGetProgressUsecase(repos.Profiles, repos.Records, settings),
		Chart:          usecase.NewGetChartUsecase(repos.Profiles, repos.Records),
		Records:        usecase.NewGetRecordsUsecase(repos.Records),
		Leaderboard:    usecase.NewGetLeaderboardUsecase(repos.Streaks, repos.Profiles),
		UpdateSettings: usecase.NewUpdateSettingsUsecase(settings),
		SendReminders:  usecase.NewSendRemindersUsecase(repos.Profiles, repos.Records, settings),
		Settings:       settings,
	}
	uc.HandleMessage = usecase.NewHandleMessageUsecase(usecase.HandleMessageDeps{
		Log:            uc.Log,
		SetProfile:     uc.SetProfile,
		SetPrice:       uc.SetPrice,
		Progress:       uc.Progress,
		Chart:          uc.Chart,
		Leaderboard:    uc.Leaderboard,
		UpdateSettings: uc.UpdateSettings,
		Settings:       settings,
	})
	return uc
}
