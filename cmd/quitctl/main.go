package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"

	"github.com/fardannozami/quitzone/internal/app"
	"github.com/fardannozami/quitzone/internal/config"
	"github.com/fardannozami/quitzone/internal/logger"
)

// CLI is the operator tool. It talks to the storage configured by the same
// environment as the bot.
type CLI struct {
	Version kong.VersionFlag
	JSON    bool `help:"Print JSON instead of text." short:"j"`

	Progress    ProgressCmd    `cmd:"" help:"Show a user's progress."`
	Chart       ChartCmd       `cmd:"" help:"Plot goal vs actual consumption."`
	Records     RecordsCmd     `cmd:"" help:"List a user's daily records."`
	Profile     ProfileCmd     `cmd:"" help:"Create or update a user's plan."`
	Log         LogCmd         `cmd:"" help:"Record consumption for a day."`
	Settings    SettingsCmd    `cmd:"" help:"Show or change a user's settings."`
	Leaderboard LeaderboardCmd `cmd:"" help:"Show the streak leaderboard."`
	Remind      RemindCmd      `cmd:"" help:"Run the reminder job once."`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("quitctl"),
		kong.Description("Operator tool for the MyQuitZone tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	// keep stdout for command output
	logCloser, err := logger.Setup("warn", cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	if loc, err := cfg.Location(); err == nil {
		time.Local = loc
	}

	ctx := context.Background()
	repos, closeStore, err := app.OpenRepositories(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("Failed to open storage")
		os.Exit(1)
	}
	defer closeStore()

	err = kctx.Run(&Context{
		Ctx:  ctx,
		UC:   app.NewUsecases(repos, cfg),
		Out:  os.Stdout,
		JSON: cli.JSON,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeStore()
		logCloser.Close()
		os.Exit(1)
	}
}
