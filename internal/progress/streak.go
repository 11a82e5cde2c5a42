package progress

import (
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
)

// MaxStreakDays bounds the backward walk in Streak.
const MaxStreakDays = 365

type StreakMode int

const (
	// AnyRecord counts every day that has a record.
	AnyRecord StreakMode = iota
	// GoalMet counts only days whose record met its goal.
	GoalMet
	// SmokeFree counts only days recorded with zero cigarettes.
	SmokeFree
)

func (m StreakMode) qualifies(r domain.DailyRecord) bool {
	switch m {
	case GoalMet:
		return r.GoalMet
	case SmokeFree:
		return r.Actual == 0
	default:
		return true
	}
}

// Streak counts consecutive qualifying days ending at ref, walking backward
// until the first day without a qualifying record.
func Streak(records domain.Records, ref time.Time, mode StreakMode) int {
	if len(records) == 0 {
		return 0
	}

	count := 0
	day := ref
	for i := 0; i < MaxStreakDays; i++ {
		r, ok := records[domain.DateKey(day)]
		if !ok || !mode.qualifies(r) {
			break
		}
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}
