// Package progress holds the pure calculations behind the tracker: the daily
// goal schedule, streaks, savings, the habit plant and chart series. Nothing
// here performs I/O or keeps state between calls.
package progress

import (
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
)

// DefaultReductionPerWeek is used when a reducing profile has no cadence set.
const DefaultReductionPerWeek = 1

// GoalFor returns how many cigarettes the profile allows on the dayIndex-th
// tracked day, which falls on the calendar day day.
//
// A quitting profile keeps its baseline until the target date and drops to
// zero on and after it; without a target date the goal is always zero. A
// reducing profile loses ReductionPerWeek cigarettes per elapsed whole week,
// floored at zero.
func GoalFor(p domain.UserProfile, dayIndex int, day time.Time) int {
	baseline := max(p.DailyBaseline, 0)

	if p.Objective == domain.ObjectiveReduce {
		cadence := p.ReductionPerWeek
		if cadence <= 0 {
			cadence = DefaultReductionPerWeek
		}
		weeks := max(dayIndex, 0) / 7
		return max(baseline-weeks*cadence, 0)
	}

	if p.TargetDate == nil {
		return 0
	}
	if domain.DateKey(day) < domain.DateKey(*p.TargetDate) {
		return baseline
	}
	return 0
}

// DayIndex is the number of records dated strictly before day.
func DayIndex(records domain.Records, day time.Time) int {
	key := domain.DateKey(day)
	n := 0
	for d := range records {
		if d < key {
			n++
		}
	}
	return n
}
