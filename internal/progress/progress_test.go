package progress_test

import (
	"math"
	"testing"
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/progress"
)

// fixtureActuals is forty days of a smoker with a baseline of 20 slowly cutting down.
var fixtureActuals = []int{
	22, 20, 23, 19, 21, 20, 18, 18, 19, 17,
	18, 19, 17, 18, 19, 17, 18, 19, 17, 18,
	16, 16, 17, 19, 17, 18, 16, 17, 15, 16,
	17, 15, 15, 16, 14, 15, 16, 14, 15, 14,
}

var fixtureStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return fixtureStart.AddDate(0, 0, offset)
}

func buildRecords(actuals []int, goal int) domain.Records {
	records := make(domain.Records, len(actuals))
	for i, a := range actuals {
		key := domain.DateKey(day(i))
		records[key] = domain.DailyRecord{Date: key, Actual: a, Goal: goal, GoalMet: a <= goal}
	}
	return records
}

func reducer(baseline, perWeek int) domain.UserProfile {
	return domain.UserProfile{DailyBaseline: baseline, Objective: domain.ObjectiveReduce, ReductionPerWeek: perWeek}
}

// =============================================================================
// GOAL SCHEDULE
// =============================================================================

func TestGoalFor_QuitWithoutTarget_AlwaysZero(t *testing.T) {
	p := domain.UserProfile{DailyBaseline: 25, Objective: domain.ObjectiveQuit}
	for i := 0; i < 400; i++ {
		if got := progress.GoalFor(p, i, day(i)); got != 0 {
			t.Fatalf("day %d: expected 0, got %d", i, got)
		}
	}
}

func TestGoalFor_QuitWithTarget(t *testing.T) {
	target := day(10)
	p := domain.UserProfile{DailyBaseline: 12, Objective: domain.ObjectiveQuit, TargetDate: &target}

	if got := progress.GoalFor(p, 0, day(9)); got != 12 {
		t.Errorf("day before target: expected baseline 12, got %d", got)
	}
	if got := progress.GoalFor(p, 10, day(10)); got != 0 {
		t.Errorf("target day: expected 0, got %d", got)
	}
	if got := progress.GoalFor(p, 11, day(30)); got != 0 {
		t.Errorf("after target: expected 0, got %d", got)
	}
}

func TestGoalFor_ReduceWeeklySteps(t *testing.T) {
	cases := []struct{ baseline, perWeek int }{{20, 1}, {20, 3}, {7, 2}, {0, 1}}
	for _, c := range cases {
		p := reducer(c.baseline, c.perWeek)
		for k := 0; k < 60; k++ {
			want := max(c.baseline-k*c.perWeek, 0)
			if got := progress.GoalFor(p, 7*k, day(7*k)); got != want {
				t.Errorf("B=%d R=%d week %d: expected %d, got %d", c.baseline, c.perWeek, k, want, got)
			}
		}
	}
}

func TestGoalFor_ReduceTruncatesWithinWeek(t *testing.T) {
	p := reducer(20, 2)
	if got := progress.GoalFor(p, 6, day(6)); got != 20 {
		t.Errorf("day 6: expected 20, got %d", got)
	}
	if got := progress.GoalFor(p, 13, day(13)); got != 18 {
		t.Errorf("day 13: expected 18, got %d", got)
	}
}

func TestGoalFor_MissingCadenceDefaultsToOne(t *testing.T) {
	p := reducer(10, 0)
	if got := progress.GoalFor(p, 21, day(21)); got != 7 {
		t.Errorf("expected 7 with default cadence, got %d", got)
	}
}

// =============================================================================
// STREAKS
// =============================================================================

func TestStreak_EmptyRecords(t *testing.T) {
	for _, mode := range []progress.StreakMode{progress.AnyRecord, progress.GoalMet, progress.SmokeFree} {
		if got := progress.Streak(domain.Records{}, day(0), mode); got != 0 {
			t.Errorf("mode %d: expected 0, got %d", mode, got)
		}
		if got := progress.Streak(nil, day(100), mode); got != 0 {
			t.Errorf("mode %d with nil records: expected 0, got %d", mode, got)
		}
	}
}

func TestStreak_FortyConsecutiveDays(t *testing.T) {
	records := buildRecords(fixtureActuals, 20)
	if got := progress.Streak(records, day(39), progress.AnyRecord); got != 40 {
		t.Errorf("expected 40, got %d", got)
	}
}

func TestStreak_StopsAtGap(t *testing.T) {
	records := buildRecords(fixtureActuals, 20)
	delete(records, domain.DateKey(day(19)))

	if got := progress.Streak(records, day(39), progress.AnyRecord); got != 20 {
		t.Errorf("expected streak to stop at the gap (20), got %d", got)
	}
	if got := progress.Streak(records, day(18), progress.AnyRecord); got != 19 {
		t.Errorf("streak before the gap: expected 19, got %d", got)
	}
}

func TestStreak_ReferenceWithoutRecord(t *testing.T) {
	records := buildRecords(fixtureActuals, 20)
	if got := progress.Streak(records, day(41), progress.AnyRecord); got != 0 {
		t.Errorf("expected 0 when reference day has no record, got %d", got)
	}
}

func TestStreak_GoalMetMode(t *testing.T) {
	records := buildRecords([]int{10, 25, 10, 10}, 20)
	if got := progress.Streak(records, day(3), progress.GoalMet); got != 2 {
		t.Errorf("expected 2 goal-met days, got %d", got)
	}
	if got := progress.Streak(records, day(3), progress.AnyRecord); got != 4 {
		t.Errorf("expected 4 recorded days, got %d", got)
	}
}

func TestStreak_SmokeFreeMode(t *testing.T) {
	records := buildRecords([]int{3, 0, 0, 0}, 0)
	if got := progress.Streak(records, day(3), progress.SmokeFree); got != 3 {
		t.Errorf("expected 3 smoke-free days, got %d", got)
	}
}

func TestStreak_MonotonicAsDaysAreAdded(t *testing.T) {
	records := domain.Records{}
	ref := day(50)
	prev := 0
	for i := 0; i < 50; i++ {
		key := domain.DateKey(ref.AddDate(0, 0, -i))
		records[key] = domain.DailyRecord{Date: key}
		got := progress.Streak(records, ref, progress.AnyRecord)
		if got < prev {
			t.Fatalf("streak decreased from %d to %d", prev, got)
		}
		prev = got
	}
	if prev != 50 {
		t.Errorf("expected 50, got %d", prev)
	}
}

func TestStreak_CappedAtOneYear(t *testing.T) {
	records := domain.Records{}
	ref := day(500)
	for i := 0; i < 400; i++ {
		key := domain.DateKey(ref.AddDate(0, 0, -i))
		records[key] = domain.DailyRecord{Date: key}
	}
	if got := progress.Streak(records, ref, progress.AnyRecord); got != progress.MaxStreakDays {
		t.Errorf("expected cap %d, got %d", progress.MaxStreakDays, got)
	}
}

// =============================================================================
// AGGREGATE STATISTICS
// =============================================================================

func TestAvoidedCount_Fixture(t *testing.T) {
	p := reducer(20, 1)

	if got := progress.AvoidedCount(p, buildRecords(fixtureActuals, 20)); got != 111 {
		t.Errorf("forty days: expected 111, got %d", got)
	}

	lastTen := buildRecords(fixtureActuals[30:], 20)
	avoided := progress.AvoidedCount(p, lastTen)
	if avoided != 49 {
		t.Fatalf("last ten days: expected 49, got %d", avoided)
	}
	if saved := progress.SavedAmount(avoided, 0.65); math.Abs(saved-31.85) > 1e-9 {
		t.Errorf("expected 31.85 saved, got %v", saved)
	}
}

func TestAvoidedCount_NeverNegative(t *testing.T) {
	p := reducer(5, 1)
	records := buildRecords([]int{30, 40, 50, -3}, 5)
	got := progress.AvoidedCount(p, records)
	if got < 0 {
		t.Fatalf("avoided count must not be negative, got %d", got)
	}
	// only the -3 day is below baseline
	if got != 8 {
		t.Errorf("expected 8, got %d", got)
	}
}

func TestAvoidedCount_GapsKeepEarlierDays(t *testing.T) {
	p := reducer(20, 1)
	records := buildRecords([]int{10, 10, 10}, 20)
	delete(records, domain.DateKey(day(1)))
	if got := progress.AvoidedCount(p, records); got != 20 {
		t.Errorf("expected 20, got %d", got)
	}
}

func TestSavedAmount_NoRounding(t *testing.T) {
	prices := []float64{0, 0.1, 0.65, 1.333, 1500}
	for n := 0; n < 200; n += 7 {
		for _, price := range prices {
			if got, want := progress.SavedAmount(n, price), float64(n)*price; got != want {
				t.Errorf("n=%d price=%v: expected %v, got %v", n, price, want, got)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	p := reducer(20, 1)
	p.CigarettePrice = 2
	records := buildRecords([]int{0, 25, 10, 0}, 20)

	s := progress.Summarize(p, records, day(3))
	if s.TotalDays != 4 || s.SmokeFreeDays != 2 || s.GoalMetDays != 3 {
		t.Errorf("unexpected day counts: %+v", s)
	}
	if s.Avoided != 50 || s.Saved != 100 {
		t.Errorf("expected 50 avoided and 100 saved, got %d and %v", s.Avoided, s.Saved)
	}
	if !s.TodayRecorded || s.TodayActual != 0 || s.TodayGoal != 20 {
		t.Errorf("unexpected today figures: %+v", s)
	}
	if s.ConnectionDays != 4 || s.GoalStreak != 2 || s.SmokeFreeRun != 1 {
		t.Errorf("unexpected streaks: %+v", s)
	}

	tomorrow := progress.Summarize(p, records, day(4))
	if tomorrow.TodayRecorded || tomorrow.TodayGoal != 20 || tomorrow.ConnectionDays != 0 {
		t.Errorf("unexpected figures for an unrecorded day: %+v", tomorrow)
	}
}

// =============================================================================
// GROWTH
// =============================================================================

func TestGrowth_FortyOfSixty(t *testing.T) {
	if got := progress.Growth(40, 60); got != progress.SmallTree {
		t.Errorf("expected small tree, got %s", got)
	}
	if got := progress.GrowthProgress(40, 60); math.Abs(got-40.0/60.0) > 1e-9 {
		t.Errorf("expected progress 0.667, got %v", got)
	}
}

func TestGrowth_Boundaries(t *testing.T) {
	cases := []struct {
		streak int
		want   progress.GrowthState
	}{
		{0, progress.Seed}, {9, progress.Seed},
		{10, progress.Sprout}, {29, progress.Sprout},
		{30, progress.SmallTree}, {49, progress.SmallTree},
		{50, progress.Tree}, {60, progress.Tree}, {365, progress.Tree},
	}
	for _, c := range cases {
		if got := progress.Growth(c.streak, 60); got != c.want {
			t.Errorf("streak %d: expected %s, got %s", c.streak, c.want, got)
		}
	}
}

func TestGrowth_Monotonic(t *testing.T) {
	for _, total := range []int{1, 7, 21, 60, 66, 100} {
		prev := progress.Seed
		for s := 0; s <= 2*total; s++ {
			got := progress.Growth(s, total)
			if got < prev {
				t.Fatalf("total %d: state went back from %s to %s at streak %d", total, prev, got, s)
			}
			prev = got
		}
	}
}

func TestGrowthProgress_CappedAndDefaulted(t *testing.T) {
	if got := progress.GrowthProgress(90, 60); got != 1 {
		t.Errorf("expected progress capped at 1, got %v", got)
	}
	if got := progress.GrowthProgress(30, 0); got != 0.5 {
		t.Errorf("expected default duration of 60 days, got %v", got)
	}
	// the plant is already a tree while progress is below 100%
	if progress.Growth(50, 60) != progress.Tree || progress.GrowthProgress(50, 60) >= 1 {
		t.Errorf("expected tree with progress under 1")
	}
}

// =============================================================================
// CHART SERIES
// =============================================================================

func TestChartSeries_ShortWindowEndsAtLatestRecord(t *testing.T) {
	p := reducer(20, 1)
	records := buildRecords([]int{18, 17, 16, 15, 14}, 17)

	s := progress.ChartSeries(p, records, 7, day(30))
	if len(s.Theoretical) != 7 || len(s.Actual) != 7 || len(s.Dates) != 7 {
		t.Fatalf("expected 7 points, got %d/%d/%d", len(s.Dates), len(s.Theoretical), len(s.Actual))
	}
	if s.Dates[6] != domain.DateKey(day(4)) {
		t.Errorf("window should end at the latest record, ends at %s", s.Dates[6])
	}
	if s.Dates[0] != "2024-12-30" {
		t.Errorf("window should start six days earlier, starts at %s", s.Dates[0])
	}

	wantTheoretical := []int{20, 20, 17, 17, 17, 17, 17}
	wantActual := []int{0, 0, 18, 17, 16, 15, 14}
	for i := range wantActual {
		if s.Theoretical[i] != wantTheoretical[i] {
			t.Errorf("theoretical[%d]: expected %d, got %d", i, wantTheoretical[i], s.Theoretical[i])
		}
		if s.Actual[i] != wantActual[i] {
			t.Errorf("actual[%d]: expected %d, got %d", i, wantActual[i], s.Actual[i])
		}
	}
}

func TestChartSeries_LongWindowStartsAtEarliestRecord(t *testing.T) {
	p := reducer(20, 1)
	records := buildRecords([]int{18, 18, 18, 18, 18, 18, 18, 18}, 20)

	s := progress.ChartSeries(p, records, 31, day(100))
	if s.Dates[0] != domain.DateKey(day(0)) {
		t.Errorf("expected window to start at the earliest record, got %s", s.Dates[0])
	}
	// eight records on or before every later day: week one of the schedule
	if s.Theoretical[8] != 19 || s.Actual[8] != 0 {
		t.Errorf("day 8: expected goal 19 and actual 0, got %d and %d", s.Theoretical[8], s.Actual[8])
	}
	if s.Theoretical[30] != 19 {
		t.Errorf("day 30: expected goal 19 from the record count, got %d", s.Theoretical[30])
	}
}

func TestChartSeries_SparseHistoryUsesRecordCount(t *testing.T) {
	p := reducer(20, 1)
	records := domain.Records{}
	for _, i := range []int{0, 10, 20} {
		key := domain.DateKey(day(i))
		records[key] = domain.DailyRecord{Date: key, Actual: 15, Goal: 20}
	}

	s := progress.ChartSeries(p, records, 40, day(0))
	// day 30 is a month after the start but only three records precede it
	if s.Theoretical[30] != 20 {
		t.Errorf("expected goal 20 for a sparse history, got %d", s.Theoretical[30])
	}
}

func TestChartSeries_NoRecords(t *testing.T) {
	p := reducer(10, 1)
	s := progress.ChartSeries(p, nil, 3, day(5))
	if s.Dates[2] != domain.DateKey(day(5)) {
		t.Errorf("expected window to end today, got %s", s.Dates[2])
	}
	for i := range s.Actual {
		if s.Actual[i] != 0 || s.Theoretical[i] != 10 {
			t.Errorf("point %d: expected 10/0, got %d/%d", i, s.Theoretical[i], s.Actual[i])
		}
	}
}

func TestChartSeries_EmptyWindow(t *testing.T) {
	s := progress.ChartSeries(reducer(10, 1), nil, 0, day(0))
	if len(s.Actual) != 0 || len(s.Theoretical) != 0 {
		t.Errorf("expected empty series, got %+v", s)
	}
}

func TestChartSeries_NegativeActualPassesThrough(t *testing.T) {
	records := buildRecords([]int{-2}, 5)
	s := progress.ChartSeries(reducer(5, 1), records, 1, day(0))
	if s.Actual[0] != -2 {
		t.Errorf("expected raw actual -2, got %d", s.Actual[0])
	}
}

func TestMovingAverage(t *testing.T) {
	got := progress.MovingAverage([]int{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

// =============================================================================
// HEALTH MILESTONES
// =============================================================================

func TestMilestones(t *testing.T) {
	reached, next := progress.Milestones(0)
	if len(reached) != 0 || next == nil || next.Days != 1 {
		t.Errorf("day 0: expected nothing reached and day 1 next, got %v %v", reached, next)
	}

	reached, next = progress.Milestones(20)
	if len(reached) != 4 || next == nil || next.Days != 30 {
		t.Errorf("day 20: expected 4 reached and day 30 next, got %d %v", len(reached), next)
	}

	reached, next = progress.Milestones(365)
	if len(reached) != len(progress.HealthMilestones) || next != nil {
		t.Errorf("day 365: expected all reached, got %d %v", len(reached), next)
	}
}

func TestMilestones_NextIsACopy(t *testing.T) {
	_, next := progress.Milestones(20)
	next.Days = 1000

	if progress.HealthMilestones[4].Days != 30 {
		t.Errorf("Ladder changed through the returned milestone: %+v", progress.HealthMilestones[4])
	}
}
