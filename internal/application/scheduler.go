package application

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"schedbot/internal/ports/input"
)

const DefaultCheckInterval = 60 * time.Second

// Scheduler wakes on a fixed interval and runs one reminder pass per wake-up.
// Passes never overlap: a wake-up that finds the previous pass still running is skipped.
type Scheduler struct {
	reminders input.ReminderUseCase
	interval  time.Duration
	clock     func() time.Time
	log       zerolog.Logger

	mu        sync.Mutex
	cron      *cron.Cron
	stopped   bool
	runCtx    context.Context
	cancelRun context.CancelFunc
}

func NewScheduler(reminders input.ReminderUseCase, interval time.Duration, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Scheduler{
		reminders: reminders,
		interval:  interval,
		clock:     time.Now,
		log:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Start runs one pass immediately, then one per interval. Calling Start on a
// running or stopped scheduler does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil || s.stopped {
		return
	}

	s.runCtx, s.cancelRun = context.WithCancel(context.Background())
	logger := cronLogger{log: s.log}
	s.cron = cron.New(cron.WithLocation(time.UTC), cron.WithLogger(logger))

	// Both entries share one wrapped job so the skip-if-running guard covers them together.
	runCtx := s.runCtx
	job := cron.NewChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)).
		Then(cron.FuncJob(func() { s.tick(runCtx) }))
	s.cron.Schedule(&onceNow{}, job)
	s.cron.Schedule(cron.Every(s.interval), job)
	s.cron.Start()
	s.log.Info().Dur("interval", s.interval).Msg("scheduler started")
}

// RunOnce runs a single pass synchronously.
func (s *Scheduler) RunOnce(ctx context.Context) (input.TickReport, error) {
	return s.reminders.ProcessDueEvents(ctx, s.clock())
}

func (s *Scheduler) tick(ctx context.Context) {
	report, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("run_id", report.RunID).Msg("tick aborted, retrying next interval")
		return
	}
	if report.Delivered+report.Failed+report.Purged > 0 {
		s.log.Info().
			Str("run_id", report.RunID).
			Int("delivered", report.Delivered).
			Int("failed", report.Failed).
			Int("purged", report.Purged).
			Int("pending", report.Pending).
			Msg("reminders processed")
	}
}

// Stop prevents further passes, including any later Start, and waits for the in-flight one to finish.
// If ctx expires first the in-flight pass is cancelled and ctx.Err() is returned.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	c, cancelRun := s.cron, s.cancelRun
	s.cron, s.cancelRun = nil, nil
	s.stopped = true
	s.mu.Unlock()
	if c == nil {
		return nil
	}
	defer cancelRun()

	done := c.Stop()
	select {
	case <-done.Done():
		s.log.Info().Msg("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.log.Warn().Msg("scheduler stop timed out, cancelling in-flight tick")
		return ctx.Err()
	}
}

// onceNow fires at the first time cron asks, then never again.
type onceNow struct {
	fired bool
}

func (o *onceNow) Next(t time.Time) time.Time {
	if o.fired {
		return time.Time{}
	}
	o.fired = true
	return t
}

// cronLogger routes robfig/cron's logging into zerolog. cron's info lines are
// per-wake-up chatter, so they go to debug.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
