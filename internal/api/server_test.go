package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fardannozami/quitzone/internal/app"
	"github.com/fardannozami/quitzone/internal/app/usecase"
	"github.com/fardannozami/quitzone/internal/config"
	"github.com/fardannozami/quitzone/internal/domain"
	"github.com/fardannozami/quitzone/internal/infra/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	repos := &app.Repositories{Profiles: store, Records: store, Streaks: store, Settings: store}
	uc := app.NewUsecases(repos, &config.Config{
		DefaultCigarettePrice: 1500,
		DefaultCurrency:       "Rp",
		GrowthDays:            60,
		DefaultReminderHour:   20,
	})
	return NewServer(Config{Addr: ":0"}, uc), store
}

func doJSON(t *testing.T, srv *Server, method, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := map[string]json.RawMessage{}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("%s %s: invalid JSON %q", method, path, raw)
	}
	return resp.StatusCode, out
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := doJSON(t, srv, http.MethodGet, "/healthz", "")
	if code != http.StatusOK || string(body["status"]) != `"ok"` {
		t.Errorf("Unexpected health response: %d %s", code, body["status"])
	}
}

func TestProfileRecordProgressFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	code, _ := doJSON(t, srv, http.MethodPut, "/api/v1/users/u1/profile",
		`{"name":"Alice","daily_baseline":10,"objective":"reduce","reduction_per_week":1}`)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 for profile, got %d", code)
	}

	code, body := doJSON(t, srv, http.MethodPost, "/api/v1/users/u1/records", `{"actual":4,"emotion":"tenang"}`)
	if code != http.StatusCreated {
		t.Fatalf("Expected 201 for first record, got %d", code)
	}
	var logged usecase.LogResult
	if err := json.Unmarshal(body["data"], &logged); err != nil {
		t.Fatalf("Invalid log result: %v", err)
	}
	if logged.Record.Goal != 10 || !logged.Record.GoalMet {
		t.Errorf("Unexpected record: %+v", logged.Record)
	}

	code, _ = doJSON(t, srv, http.MethodPost, "/api/v1/users/u1/records", `{"actual":6}`)
	if code != http.StatusOK {
		t.Errorf("Expected 200 for overwrite, got %d", code)
	}

	code, body = doJSON(t, srv, http.MethodGet, "/api/v1/users/u1/progress", "")
	if code != http.StatusOK {
		t.Fatalf("Expected 200 for progress, got %d", code)
	}
	var report struct {
		Summary struct {
			Avoided          int     `json:"avoided"`
			Saved            float64 `json:"saved"`
			ConnectionStreak int     `json:"connection_streak"`
		} `json:"summary"`
		Growth string `json:"growth"`
	}
	if err := json.Unmarshal(body["data"], &report); err != nil {
		t.Fatalf("Invalid progress: %v", err)
	}
	if report.Summary.Avoided != 4 || report.Summary.Saved != 6000 {
		t.Errorf("Expected 4 avoided / 6000 saved, got %d / %v", report.Summary.Avoided, report.Summary.Saved)
	}
	if report.Summary.ConnectionStreak != 1 || report.Growth != "seed" {
		t.Errorf("Unexpected streak/growth: %d %s", report.Summary.ConnectionStreak, report.Growth)
	}

	code, body = doJSON(t, srv, http.MethodGet, "/api/v1/users/u1/records", "")
	if code != http.StatusOK || string(body["meta"]) != `{"count":1}` {
		t.Errorf("Expected one record, got %d %s", code, body["meta"])
	}
}

func TestChart(t *testing.T) {
	srv, store := newTestServer(t)
	p := &domain.UserProfile{UserID: "u1", DailyBaseline: 10, Objective: domain.ObjectiveReduce, ReductionPerWeek: 1}
	if err := store.UpsertProfile(context.Background(), p); err != nil {
		t.Fatal(err)
	}

	code, body := doJSON(t, srv, http.MethodGet, "/api/v1/users/u1/chart?days=14", "")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var chart usecase.ChartResult
	if err := json.Unmarshal(body["data"], &chart); err != nil {
		t.Fatalf("Invalid chart: %v", err)
	}
	if chart.Days != 14 || len(chart.Series.Dates) != 14 || len(chart.Series.Theoretical) != 14 {
		t.Errorf("Unexpected chart window: %+v", chart)
	}

	code, _ = doJSON(t, srv, http.MethodGet, "/api/v1/users/u1/chart?days=-1", "")
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for negative window, got %d", code)
	}
}

func TestErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"progress without profile", http.MethodGet, "/api/v1/users/ghost/progress", "", http.StatusNotFound},
		{"record without profile", http.MethodPost, "/api/v1/users/ghost/records", `{"actual":1}`, http.StatusNotFound},
		{"malformed body", http.MethodPost, "/api/v1/users/ghost/records", `{"actual":`, http.StatusBadRequest},
		{"bad objective", http.MethodPut, "/api/v1/users/u1/profile", `{"daily_baseline":5,"objective":"pause"}`, http.StatusBadRequest},
		{"bad target date", http.MethodPut, "/api/v1/users/u1/profile", `{"daily_baseline":5,"objective":"quit","target_date":"soon"}`, http.StatusBadRequest},
		{"bad reminder hour", http.MethodPut, "/api/v1/users/u1/settings", `{"reminder_hour":30}`, http.StatusBadRequest},
		{"price without profile", http.MethodPut, "/api/v1/users/ghost/price", `{"price":1000}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := doJSON(t, srv, tt.method, tt.path, tt.body)
			if code != tt.want {
				t.Errorf("Expected %d, got %d (%s)", tt.want, code, body["error"])
			}
			if len(body["error"]) == 0 {
				t.Error("Error response should carry an error message")
			}
		})
	}
}

func TestSettings(t *testing.T) {
	srv, _ := newTestServer(t)

	code, body := doJSON(t, srv, http.MethodGet, "/api/v1/users/u1/settings", "")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var s domain.Settings
	_ = json.Unmarshal(body["data"], &s)
	if !s.NotificationsEnabled || s.ReminderHour != 20 || s.GrowthDays != 60 {
		t.Errorf("Expected defaults, got %+v", s)
	}

	code, body = doJSON(t, srv, http.MethodPut, "/api/v1/users/u1/settings", `{"notifications_enabled":false,"growth_days":90}`)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	_ = json.Unmarshal(body["data"], &s)
	if s.NotificationsEnabled || s.GrowthDays != 90 || s.ReminderHour != 20 {
		t.Errorf("Unexpected settings after update: %+v", s)
	}
}
