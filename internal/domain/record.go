package domain

import (
	"context"
	"sort"
	"time"
)

// DateLayout is the key format of daily records.
const DateLayout = "2006-01-02"

// DailyRecord is what a user entered for one calendar day. Goal is the
// snapshot taken when the record was first written and is never recomputed.
type DailyRecord struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Date      string    `json:"date" db:"date"`
	Actual    int       `json:"actual" db:"actual"`
	Goal      int       `json:"goal" db:"goal"`
	GoalMet   bool      `json:"goal_met" db:"goal_met"`
	Emotion   string    `json:"emotion,omitempty" db:"emotion"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Records holds one user's daily records keyed by date.
type Records map[string]DailyRecord

// SortedDates returns the record keys in ascending date order.
func (r Records) SortedDates() []string {
	dates := make([]string, 0, len(r))
	for d := range r {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

type RecordRepository interface {
	GetRecords(ctx context.Context, userID string) (Records, error)
	UpsertRecord(ctx context.Context, record *DailyRecord) error
}

// DateKey formats t as a record key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a record key into midnight of that day in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, s, loc)
}
