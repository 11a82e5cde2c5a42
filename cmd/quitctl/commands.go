package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fardannozami/quitzone/internal/app"
	"github.com/fardannozami/quitzone/internal/app/usecase"
	"github.com/fardannozami/quitzone/internal/domain"
)

// Context is passed to every command's Run.
type Context struct {
	Ctx  context.Context
	UC   *app.Usecases
	Out  io.Writer
	JSON bool
}

// print writes v as indented JSON in JSON mode and text otherwise.
func (c *Context) print(v any, text string) error {
	if c.JSON {
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(c.Out, text)
	return err
}

type ProgressCmd struct {
	User string `arg:"" help:"User ID (phone number)."`
}

func (cmd *ProgressCmd) Run(ctx *Context) error {
	report, err := ctx.UC.Progress.Execute(ctx.Ctx, cmd.User)
	if err != nil {
		return err
	}
	return ctx.print(report, usecase.FormatProgress(report)+"\n\n"+usecase.FormatMilestones(report))
}

type ChartCmd struct {
	User string `arg:"" help:"User ID (phone number)."`
	Days int    `help:"Window size in days." default:"7"`
}

func (cmd *ChartCmd) Run(ctx *Context) error {
	chart, err := ctx.UC.Chart.Execute(ctx.Ctx, cmd.User, cmd.Days)
	if err != nil {
		return err
	}
	return ctx.print(chart, usecase.FormatChart(chart))
}

type RecordsCmd struct {
	User string `arg:"" help:"User ID (phone number)."`
}

func (cmd *RecordsCmd) Run(ctx *Context) error {
	records, err := ctx.UC.Records.Execute(ctx.Ctx, cmd.User)
	if err != nil {
		return err
	}
	if ctx.JSON {
		return ctx.print(records, "")
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tACTUAL\tGOAL\tMET\tEMOTION")
	for _, r := range records {
		met := "no"
		if r.GoalMet {
			met = "yes"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", r.Date, r.Actual, r.Goal, met, r.Emotion)
	}
	return tw.Flush()
}

type ProfileCmd struct {
	User      string  `arg:"" help:"User ID (phone number)."`
	Name      string  `help:"Display name."`
	Baseline  int     `help:"Cigarettes per day before starting." required:""`
	Objective string  `help:"quit or reduce." enum:"quit,reduce" default:"reduce"`
	PerWeek   int     `help:"Cigarettes removed from the goal every week (reduce)." default:"1"`
	Target    string  `help:"Quit date as YYYY-MM-DD (quit)."`
	Price     float64 `help:"Price of one cigarette." default:"-1"`
}

func (cmd *ProfileCmd) Run(ctx *Context) error {
	p, err := ctx.UC.SetProfile.Execute(ctx.Ctx, cmd.User, usecase.ProfileInput{
		Name:             cmd.Name,
		DailyBaseline:    cmd.Baseline,
		Objective:        domain.Objective(cmd.Objective),
		ReductionPerWeek: cmd.PerWeek,
		TargetDate:       cmd.Target,
	})
	if err != nil {
		return err
	}
	if cmd.Price >= 0 {
		if p, err = ctx.UC.SetPrice.Execute(ctx.Ctx, cmd.User, cmd.Price); err != nil {
			return err
		}
	}
	return ctx.print(p, usecase.FormatProfile(p))
}

type LogCmd struct {
	User    string `arg:"" help:"User ID (phone number)."`
	Actual  int    `arg:"" help:"Cigarettes smoked."`
	Emotion string `help:"How the day felt."`
	Date    string `help:"Day as YYYY-MM-DD, defaults to today."`
}

func (cmd *LogCmd) Run(ctx *Context) error {
	res, err := ctx.UC.Log.Execute(ctx.Ctx, cmd.User, usecase.LogInput{
		Actual:  cmd.Actual,
		Emotion: cmd.Emotion,
		Date:    cmd.Date,
	})
	if err != nil {
		return err
	}
	name := res.Profile.Name
	if name == "" {
		name = cmd.User
	}
	return ctx.print(res, usecase.FormatLog(name, res))
}

type SettingsCmd struct {
	User       string `arg:"" help:"User ID (phone number)."`
	Reminders  string `help:"Turn daily reminders on or off." enum:"on,off,keep" default:"keep"`
	Hour       int    `help:"Reminder hour (0-23)." default:"-1"`
	GrowthDays int    `help:"Days for the plant to become a tree." default:"0"`
	Currency   string `help:"Currency label for savings."`
}

func (cmd *SettingsCmd) Run(ctx *Context) error {
	var in usecase.SettingsInput
	if cmd.Reminders != "keep" {
		enabled := cmd.Reminders == "on"
		in.NotificationsEnabled = &enabled
	}
	if cmd.Hour >= 0 {
		in.ReminderHour = &cmd.Hour
	}
	if cmd.GrowthDays > 0 {
		in.GrowthDays = &cmd.GrowthDays
	}
	if cmd.Currency != "" {
		in.Currency = &cmd.Currency
	}

	var (
		s   *domain.Settings
		err error
	)
	if in == (usecase.SettingsInput{}) {
		s, err = ctx.UC.Settings.Load(ctx.Ctx, cmd.User)
	} else {
		s, err = ctx.UC.UpdateSettings.Execute(ctx.Ctx, cmd.User, in)
	}
	if err != nil {
		return err
	}

	text := fmt.Sprintf("%s\nPertumbuhan tanaman: %d hari\nMata uang: %s",
		usecase.FormatSettings(s), s.GrowthDays, s.Currency)
	return ctx.print(s, text)
}

type LeaderboardCmd struct{}

func (cmd *LeaderboardCmd) Run(ctx *Context) error {
	board, err := ctx.UC.Leaderboard.Execute(ctx.Ctx)
	if err != nil {
		return err
	}
	return ctx.print(board, usecase.FormatLeaderboard(board))
}

// RemindCmd prints the reminders that are due instead of sending them.
type RemindCmd struct {
	Hour int `help:"Hour to simulate, defaults to the current hour." default:"-1"`
}

func (cmd *RemindCmd) Run(ctx *Context) error {
	now := time.Now()
	if cmd.Hour >= 0 {
		now = time.Date(now.Year(), now.Month(), now.Day(), cmd.Hour, 0, 0, 0, now.Location())
	}

	type reminder struct {
		UserID string `json:"user_id"`
		Text   string `json:"text"`
	}
	var due []reminder
	collect := func(_ context.Context, userID, text string) error {
		due = append(due, reminder{UserID: userID, Text: text})
		return nil
	}

	if _, err := ctx.UC.SendReminders.Execute(ctx.Ctx, now, collect); err != nil {
		return err
	}

	text := fmt.Sprintf("%d pengingat jatuh tempo pukul %02d:00", len(due), now.Hour())
	for _, r := range due {
		text += fmt.Sprintf("\n\n[%s]\n%s", r.UserID, r.Text)
	}
	return ctx.print(due, text)
}
