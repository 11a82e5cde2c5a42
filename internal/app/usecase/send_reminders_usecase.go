package usecase

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/progress"
)

// SendFunc delivers a text message to a user.
type SendFunc func(ctx context.Context, userID, text string) error

type SendRemindersUsecase struct {
	profiles domain.ProfileRepository
	records  domain.RecordRepository
	settings *SettingsManager
}

func NewSendRemindersUsecase(profiles domain.ProfileRepository, records domain.RecordRepository, settings *SettingsManager) *SendRemindersUsecase {
	return &SendRemindersUsecase{profiles: profiles, records: records, settings: settings}
}

// Execute reminds every user whose reminder hour is now's hour and who has
// not logged today. A failed send is logged and does not stop the run.
func (uc *SendRemindersUsecase) Execute(ctx context.Context, now time.Time, send SendFunc) (int, error) {
	profiles, err := uc.profiles.GetAllProfiles(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, p := range profiles {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		settings, err := uc.settings.Load(ctx, p.UserID)
		if err != nil {
			return sent, err
		}
		if !settings.NotificationsEnabled || settings.ReminderHour != now.Hour() {
			continue
		}

		records, err := uc.records.GetRecords(ctx, p.UserID)
		if err != nil {
			return sent, err
		}
		if _, ok := records[domain.DateKey(now)]; ok {
			continue
		}

		goal := progress.GoalFor(*p, progress.DayIndex(records, now), now)
		streak := progress.Streak(records, now.AddDate(0, 0, -1), progress.AnyRecord)

		if err := send(ctx, p.UserID, FormatReminder(p, goal, streak)); err != nil {
			log.WithFields(log.Fields{
				"user_id": p.UserID,
				"error":   err,
			}).Warn("Failed to send reminder")
			continue
		}
		sent++
	}
	return sent, nil
}
