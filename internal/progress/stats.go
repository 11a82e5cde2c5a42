package progress

import (
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
)

// AvoidedCount sums, over every record, how far the actual count stayed under
// the profile's current baseline. Days above the baseline contribute nothing.
// The goal stored on each record is not used, so the total can differ from
// the per-day goals shown on the chart after the baseline changes.
func AvoidedCount(p domain.UserProfile, records domain.Records) int {
	total := 0
	for _, r := range records {
		total += max(p.DailyBaseline-r.Actual, 0)
	}
	return total
}

// SavedAmount is avoided * unitPrice, unrounded.
func SavedAmount(avoided int, unitPrice float64) float64 {
	return float64(avoided) * unitPrice
}

type Summary struct {
	TotalDays      int     `json:"total_days"`
	GoalMetDays    int     `json:"goal_met_days"`
	SmokeFreeDays  int     `json:"smoke_free_days"`
	TotalSmoked    int     `json:"total_smoked"`
	AveragePerDay  float64 `json:"average_per_day"`
	Avoided        int     `json:"avoided"`
	Saved          float64 `json:"saved"`
	TodayGoal      int     `json:"today_goal"`
	TodayRecorded  bool    `json:"today_recorded"`
	TodayActual    int     `json:"today_actual"`
	ConnectionDays int     `json:"connection_streak"`
	GoalStreak     int     `json:"goal_streak"`
	SmokeFreeRun   int     `json:"smoke_free_streak"`
}

// Summarize gathers the figures shown on the progress screen for today.
func Summarize(p domain.UserProfile, records domain.Records, today time.Time) Summary {
	s := Summary{TotalDays: len(records)}
	for _, r := range records {
		if r.GoalMet {
			s.GoalMetDays++
		}
		if r.Actual == 0 {
			s.SmokeFreeDays++
		}
		s.TotalSmoked += r.Actual
	}
	if s.TotalDays > 0 {
		s.AveragePerDay = float64(s.TotalSmoked) / float64(s.TotalDays)
	}

	s.Avoided = AvoidedCount(p, records)
	s.Saved = SavedAmount(s.Avoided, p.CigarettePrice)

	if r, ok := records[domain.DateKey(today)]; ok {
		s.TodayRecorded = true
		s.TodayActual = r.Actual
		s.TodayGoal = r.Goal
	} else {
		s.TodayGoal = GoalFor(p, DayIndex(records, today), today)
	}

	s.ConnectionDays = Streak(records, today, AnyRecord)
	s.GoalStreak = Streak(records, today, GoalMet)
	s.SmokeFreeRun = Streak(records, today, SmokeFree)
	return s
}
