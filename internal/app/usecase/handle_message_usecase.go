package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/fardannozami/quitzone/internal/domain"
)

type logConsumer interface {
	Execute(ctx context.Context, userID string, in LogInput) (*LogResult, error)
}

type profileSetter interface {
	Execute(ctx context.Context, userID string, in ProfileInput) (*domain.UserProfile, error)
}

type priceSetter interface {
	Execute(ctx context.Context, userID string, price float64) (*domain.UserProfile, error)
}

type progressGetter interface {
	Execute(ctx context.Context, userID string) (*ProgressReport, error)
}

type chartGetter interface {
	Execute(ctx context.Context, userID string, days int) (*ChartResult, error)
}

type leaderboardGetter interface {
	Execute(ctx context.Context) (*Leaderboard, error)
}

type settingsUpdater interface {
	Execute(ctx context.Context, userID string, in SettingsInput) (*domain.Settings, error)
}

type settingsLoader interface {
	Load(ctx context.Context, userID string) (*domain.Settings, error)
}

type HandleMessageDeps struct {
	Log            logConsumer
	SetProfile     profileSetter
	SetPrice       priceSetter
	Progress       progressGetter
	Chart          chartGetter
	Leaderboard    leaderboardGetter
	UpdateSettings settingsUpdater
	Settings       settingsLoader
}

type HandleMessageUsecase struct {
	deps HandleMessageDeps
}

func NewHandleMessageUsecase(deps HandleMessageDeps) *HandleMessageUsecase {
	return &HandleMessageUsecase{deps: deps}
}

// Execute routes a chat message to its command and returns the reply text.
// Messages that are not commands get an empty reply. Mistakes in a command
// are answered with its usage instead of an error.
func (uc *HandleMessageUsecase) Execute(ctx context.Context, userID, name, msg string) (string, error) {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return "", nil
	}
	args := fields[1:]

	switch strings.ToLower(fields[0]) {
	case "#lapor":
		return uc.lapor(ctx, userID, name, args)
	case "#profil":
		return uc.profil(ctx, userID, name, args)
	case "#harga":
		return uc.harga(ctx, userID, args)
	case "#statistik":
		report, err := uc.deps.Progress.Execute(ctx, userID)
		if err != nil {
			return replyForError(err, "")
		}
		return FormatProgress(report), nil
	case "#manfaat":
		report, err := uc.deps.Progress.Execute(ctx, userID)
		if err != nil {
			return replyForError(err, "")
		}
		return FormatMilestones(report), nil
	case "#grafik":
		return uc.grafik(ctx, userID, args)
	case "#pengingat":
		return uc.pengingat(ctx, userID, args)
	case "#leaderboard":
		board, err := uc.deps.Leaderboard.Execute(ctx)
		if err != nil {
			return "", err
		}
		return FormatLeaderboard(board), nil
	case "#bantuan":
		return HelpText, nil
	}
	return "", nil
}

func (uc *HandleMessageUsecase) lapor(ctx context.Context, userID, name string, args []string) (string, error) {
	if len(args) == 0 {
		return usageLapor, nil
	}
	actual, err := strconv.Atoi(args[0])
	if err != nil || actual < 0 {
		return usageLapor, nil
	}

	res, err := uc.deps.Log.Execute(ctx, userID, LogInput{
		Actual:  actual,
		Emotion: strings.Join(args[1:], " "),
	})
	if err != nil {
		return replyForError(err, usageLapor)
	}
	if res.Profile.Name != "" {
		name = res.Profile.Name
	}
	return FormatLog(name, res), nil
}

// profil accepts "kurangi"/"reduce" with an optional weekly cadence, or
// "berhenti"/"quit" with an optional target date.
func (uc *HandleMessageUsecase) profil(ctx context.Context, userID, name string, args []string) (string, error) {
	if len(args) < 2 {
		return usageProfil, nil
	}
	baseline, err := strconv.Atoi(args[0])
	if err != nil || baseline < 0 {
		return usageProfil, nil
	}

	in := ProfileInput{Name: name, DailyBaseline: baseline}
	switch strings.ToLower(args[1]) {
	case "kurangi", "reduce":
		in.Objective = domain.ObjectiveReduce
		if len(args) > 2 {
			perWeek, err := strconv.Atoi(args[2])
			if err != nil || perWeek <= 0 {
				return usageProfil, nil
			}
			in.ReductionPerWeek = perWeek
		}
	case "berhenti", "quit":
		in.Objective = domain.ObjectiveQuit
		if len(args) > 2 {
			in.TargetDate = args[2]
		}
	default:
		return usageProfil, nil
	}

	p, err := uc.deps.SetProfile.Execute(ctx, userID, in)
	if err != nil {
		return replyForError(err, usageProfil)
	}
	return FormatProfile(p), nil
}

func (uc *HandleMessageUsecase) harga(ctx context.Context, userID string, args []string) (string, error) {
	if len(args) != 1 {
		return usageHarga, nil
	}
	// "1.500" and "1500" both mean fifteen hundred
	price, err := strconv.ParseFloat(strings.ReplaceAll(strings.ReplaceAll(args[0], ".", ""), ",", "."), 64)
	if err != nil {
		return usageHarga, nil
	}

	p, err := uc.deps.SetPrice.Execute(ctx, userID, price)
	if err != nil {
		return replyForError(err, usageHarga)
	}
	settings, err := uc.deps.Settings.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	return FormatPrice(p, settings.Currency), nil
}

func (uc *HandleMessageUsecase) grafik(ctx context.Context, userID string, args []string) (string, error) {
	days := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 || n > MaxChartDays {
			return usageGrafik, nil
		}
		days = n
	}

	chart, err := uc.deps.Chart.Execute(ctx, userID, days)
	if err != nil {
		return replyForError(err, usageGrafik)
	}
	return FormatChart(chart), nil
}

func (uc *HandleMessageUsecase) pengingat(ctx context.Context, userID string, args []string) (string, error) {
	if len(args) == 0 {
		return usagePengingat, nil
	}

	var in SettingsInput
	switch strings.ToLower(args[0]) {
	case "on":
		enabled := true
		in.NotificationsEnabled = &enabled
		if len(args) > 1 {
			hour, err := strconv.Atoi(args[1])
			if err != nil || hour < 0 || hour > 23 {
				return usagePengingat, nil
			}
			in.ReminderHour = &hour
		}
	case "off":
		enabled := false
		in.NotificationsEnabled = &enabled
	default:
		return usagePengingat, nil
	}

	s, err := uc.deps.UpdateSettings.Execute(ctx, userID, in)
	if err != nil {
		return replyForError(err, usagePengingat)
	}
	return FormatSettings(s), nil
}

// replyForError turns validation errors into a reply and passes other
// errors through.
func replyForError(err error, usage string) (string, error) {
	switch {
	case errors.Is(err, domain.ErrProfileNotFound):
		return noProfileText, nil
	case errors.Is(err, domain.ErrInvalidCount),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidObjective),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidSettings):
		if usage != "" {
			return usage, nil
		}
		return err.Error(), nil
	}
	return "", err
}
