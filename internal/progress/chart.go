package progress

import (
	"sort"
	"time"

	"github.com/fardannozami/quitzone/internal/domain"
)

// ShortWindowDays is the largest window anchored on the latest record.
const ShortWindowDays = 30

type Series struct {
	Dates       []string `json:"dates"`
	Theoretical []int    `json:"theoretical"`
	Actual      []int    `json:"actual"`
}

// ChartSeries builds the goal and actual curves over windowDays days.
//
// Windows of up to ShortWindowDays end at the latest record; longer ones
// start at the earliest record. Without records the window ends at today.
// Days without a record get the scheduled goal, using as day index the number
// of records dated on or before that day, and an actual value of zero.
func ChartSeries(p domain.UserProfile, records domain.Records, windowDays int, today time.Time) Series {
	if windowDays <= 0 {
		return Series{Dates: []string{}, Theoretical: []int{}, Actual: []int{}}
	}

	loc := today.Location()
	dates := validDates(records, loc)

	var start time.Time
	switch {
	case len(dates) == 0:
		start = startOfDay(today).AddDate(0, 0, -(windowDays - 1))
	case windowDays <= ShortWindowDays:
		latest, _ := domain.ParseDate(dates[len(dates)-1], loc)
		start = latest.AddDate(0, 0, -(windowDays - 1))
	default:
		start, _ = domain.ParseDate(dates[0], loc)
	}

	s := Series{
		Dates:       make([]string, windowDays),
		Theoretical: make([]int, windowDays),
		Actual:      make([]int, windowDays),
	}
	for i := 0; i < windowDays; i++ {
		day := start.AddDate(0, 0, i)
		key := domain.DateKey(day)
		s.Dates[i] = key

		if r, ok := records[key]; ok {
			s.Theoretical[i] = r.Goal
			s.Actual[i] = r.Actual
			continue
		}
		onOrBefore := sort.Search(len(dates), func(j int) bool { return dates[j] > key })
		s.Theoretical[i] = GoalFor(p, onOrBefore, day)
	}
	return s
}

// MovingAverage smooths values with a trailing window. The first points
// average over what is available.
func MovingAverage(values []int, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		window = 1
	}
	sum := 0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = float64(sum) / float64(min(i+1, window))
	}
	return out
}

func validDates(records domain.Records, loc *time.Location) []string {
	dates := make([]string, 0, len(records))
	for _, d := range records.SortedDates() {
		if _, err := domain.ParseDate(d, loc); err == nil {
			dates = append(dates, d)
		}
	}
	return dates
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
