package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fardannozami/quitzone/internal/app/usecase"
	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/infra/memory"
)

var errStorage = errors.New("storage unavailable")

// failingRecords implements domain.RecordRepository and always fails.
type failingRecords struct{}

func (failingRecords) GetRecords(ctx context.Context, userID string) (domain.Records, error) {
	return nil, errStorage
}

func (failingRecords) UpsertRecord(ctx context.Context, record *domain.DailyRecord) error {
	return errStorage
}

func testDefaults() usecase.SettingsDefaults {
	return usecase.SettingsDefaults{
		NotificationsEnabled: true,
		ReminderHour:         20,
		GrowthDays:           60,
		Currency:             "Rp",
	}
}

// daysAgo returns the date key n days before today.
func daysAgo(n int) string {
	return domain.DateKey(time.Now().AddDate(0, 0, -n))
}

func seedProfile(t *testing.T, store *memory.Store, p domain.UserProfile) {
	t.Helper()
	if err := store.UpsertProfile(context.Background(), &p); err != nil {
		t.Fatalf("Failed to seed profile: %v", err)
	}
}

func seedRecord(t *testing.T, store *memory.Store, userID, date string, actual, goal int) {
	t.Helper()
	r := &domain.DailyRecord{
		ID:      date,
		UserID:  userID,
		Date:    date,
		Actual:  actual,
		Goal:    goal,
		GoalMet: actual <= goal,
	}
	if err := store.UpsertRecord(context.Background(), r); err != nil {
		t.Fatalf("Failed to seed record: %v", err)
	}
}

func reducer(userID string, baseline, perWeek int) domain.UserProfile {
	return domain.UserProfile{
		UserID:           userID,
		Name:             "Alice",
		DailyBaseline:    baseline,
		Objective:        domain.ObjectiveReduce,
		ReductionPerWeek: perWeek,
		CigarettePrice:   1500,
	}
}
