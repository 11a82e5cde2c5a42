// Package jobs runs background tasks on a cron schedule.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/fardannozami/quitzone/internal/app/usecase"
)

type reminderSender interface {
	Execute(ctx context.Context, now time.Time, send usecase.SendFunc) (int, error)
}

// Scheduler runs the reminder job in the app timezone.
type Scheduler struct {
	cron      *cron.Cron
	loc       *time.Location
	spec      string
	reminders reminderSender
	send      usecase.SendFunc
}

func NewScheduler(reminders reminderSender, send usecase.SendFunc, loc *time.Location, spec string) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		loc:       loc,
		spec:      spec,
		reminders: reminders,
		send:      send,
	}
}

// Start registers the jobs and starts the cron loop. It fails on an invalid
// schedule expression.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunReminders(ctx) }); err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.spec, err)
	}

	s.cron.Start()
	log.WithFields(log.Fields{
		"schedule": s.spec,
		"timezone": s.loc.String(),
	}).Info("Scheduler started")
	return nil
}

// RunReminders sends the reminders due at the current hour.
func (s *Scheduler) RunReminders(ctx context.Context) {
	log.Debug("[CRON] Checking reminders")
	sent, err := s.reminders.Execute(ctx, time.Now().In(s.loc), s.send)
	if err != nil {
		log.WithError(err).Error("[CRON] Reminder run failed")
		return
	}
	if sent > 0 {
		log.WithField("sent", sent).Info("[CRON] Reminders sent")
	}
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Scheduler stopped")
}
