package reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tup-eyegrade/eyegrade-api/logger"
)

type sweeper interface {
	Sweep(ctx context.Context) (SweepResult, error)
}

// Scheduler triggers a sweep on a cron schedule. A tick that fires while the
// previous sweep is still running is skipped.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	sweeper  sweeper
	log      *logger.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewScheduler(log *logger.Logger, schedule string, loc *time.Location, s sweeper) (*Scheduler, error) {
	if loc == nil {
		loc = time.Local
	}
	log = log.With("component", "ReminderScheduler")

	cronLog := cron.PrintfLogger(log.StdLog())
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	sch := &Scheduler{cron: c, schedule: schedule, sweeper: s, log: log, ctx: ctx, cancel: cancel}

	if _, err := c.AddFunc(schedule, sch.tick); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	return sch, nil
}

func (s *Scheduler) tick() {
	if _, err := s.sweeper.Sweep(s.ctx); err != nil && !errors.Is(err, ErrSweepInProgress) {
		s.log.Error("reminder sweep failed", "error", err)
	}
}

func (s *Scheduler) Start() {
	s.log.Info("reminder scheduler started", "schedule", s.schedule)
	s.cron.Start()
}

// Stop halts new ticks and waits for a running sweep until ctx expires,
// after which the sweep's context is cancelled.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.cancel()
		<-done.Done()
	}
	s.cancel()
	s.log.Info("reminder scheduler stopped")
}
