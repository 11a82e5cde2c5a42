package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/progress"
)

type LogInput struct {
	Actual  int    `json:"actual"`
	Emotion string `json:"emotion"`
	Date    string `json:"date"` // YYYY-MM-DD, empty means today
}

type LogResult struct {
	Profile domain.UserProfile `json:"profile"`
	Record  domain.DailyRecord `json:"record"`
	Streak  domain.StreakState `json:"streak"`
	// Updated is set when the day already had a record.
	Updated bool `json:"updated"`
}

type LogConsumptionUsecase struct {
	profiles domain.ProfileRepository
	records  domain.RecordRepository
	streaks  domain.StreakRepository
}

func NewLogConsumptionUsecase(profiles domain.ProfileRepository, records domain.RecordRepository, streaks domain.StreakRepository) *LogConsumptionUsecase {
	return &LogConsumptionUsecase{profiles: profiles, records: records, streaks: streaks}
}

// Execute writes the record of one day. Logging the same day again replaces
// the count and emotion but keeps the goal that was snapshotted first.
func (uc *LogConsumptionUsecase) Execute(ctx context.Context, userID string, in LogInput) (*LogResult, error) {
	if in.Actual < 0 {
		return nil, domain.ErrInvalidCount
	}

	profile, err := uc.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}

	now := time.Now()
	day := now
	if in.Date != "" {
		day, err = domain.ParseDate(strings.TrimSpace(in.Date), now.Location())
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		if domain.DateKey(day) > domain.DateKey(now) {
			return nil, domain.ErrInvalidDate
		}
	}
	key := domain.DateKey(day)

	records, err := uc.records.GetRecords(ctx, userID)
	if err != nil {
		return nil, err
	}

	record, updated := records[key]
	if !updated {
		record = domain.DailyRecord{
			ID:        uuid.NewString(),
			UserID:    userID,
			Date:      key,
			Goal:      progress.GoalFor(*profile, progress.DayIndex(records, day), day),
			CreatedAt: now,
		}
	}
	record.Actual = in.Actual
	record.Emotion = strings.TrimSpace(in.Emotion)
	record.GoalMet = record.Actual <= record.Goal

	if err := uc.records.UpsertRecord(ctx, &record); err != nil {
		return nil, err
	}
	records[key] = record

	// Until today is logged the run ending yesterday is still alive.
	ref := now
	if _, ok := records[domain.DateKey(now)]; !ok {
		ref = now.AddDate(0, 0, -1)
	}
	streak := domain.StreakState{
		UserID:    userID,
		Count:     progress.Streak(records, ref, progress.AnyRecord),
		GoalCount: progress.Streak(records, ref, progress.GoalMet),
	}
	if dates := records.SortedDates(); len(dates) > 0 {
		streak.LastConnection = dates[len(dates)-1]
	}
	if err := uc.streaks.SaveStreak(ctx, &streak); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"date":    key,
		"actual":  record.Actual,
		"goal":    record.Goal,
		"streak":  streak.Count,
		"updated": updated,
	}).Info("Consumption logged")

	return &LogResult{Profile: *profile, Record: record, Streak: streak, Updated: updated}, nil
}
