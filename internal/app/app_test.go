package app

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fardannozami/quitzone/internal/config"
)

func testConfig(driver, path string) *config.Config {
	return &config.Config{
		StorageDriver:         driver,
		SQLitePath:            path,
		DefaultCigarettePrice: 1500,
		DefaultCurrency:       "Rp",
		GrowthDays:            60,
		DefaultReminderHour:   20,
	}
}

func TestOpenRepositories_Drivers(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(driver, filepath.Join(t.TempDir(), "data", "quit.db"))
			ctx := context.Background()

			repos, closeFn, err := OpenRepositories(ctx, cfg)
			if err != nil {
				t.Fatalf("OpenRepositories failed: %v", err)
			}
			defer closeFn()

			uc := NewUsecases(repos, cfg)

			reply, err := uc.HandleMessage.Execute(ctx, "628111", "Dewi", "#profil 10 kurangi")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(reply, "Profil Dewi disimpan") {
				t.Errorf("Unexpected reply: %s", reply)
			}

			reply, err = uc.HandleMessage.Execute(ctx, "628111", "Dewi", "#lapor 7")
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !strings.Contains(reply, "Target 10 tercapai") {
				t.Errorf("Unexpected reply: %s", reply)
			}

			p, err := repos.Profiles.GetProfile(ctx, "628111")
			if err != nil || p == nil || p.CigarettePrice != 1500 {
				t.Errorf("Default price not applied: %+v, %v", p, err)
			}
		})
	}
}
