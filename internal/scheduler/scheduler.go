// Package scheduler republishes the briefing on a cron schedule.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/latam-briefing-service/internal/observability"
	"github.com/m-mizutani/goerr/v2"
	rcron "github.com/robfig/cron/v3"
)

const stopTimeout = 5 * time.Second

// Job is one scheduled run. The context is cancelled when the scheduler stops.
type Job func(ctx context.Context) error

// Scheduler runs a single Job on a standard five-field cron expression.
type Scheduler struct {
	cron   *rcron.Cron
	job    Job
	logger *slog.Logger

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	runs   int
}

// New parses spec and registers job. The scheduler does nothing until Start.
func New(spec string, job Job, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:   rcron.New(),
		job:    job,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, goerr.Wrap(err, "register publish schedule", goerr.V("schedule", spec))
	}
	return s, nil
}

// Start begins firing the job. It stops on its own when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(ctx)
	runCtx := s.ctx
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("publish scheduler started", "next", s.Next())

	go func() {
		<-runCtx.Done()
		s.Stop()
	}()
}

// Stop halts the schedule and waits for a running job to return.
// It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(stopTimeout):
		s.logger.Warn("publish scheduler stop timed out waiting for running job")
	}
	s.logger.Info("publish scheduler stopped")
}

// Next returns the next scheduled fire time, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Runs reports how many times the job has fired.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scheduler) run() {
	s.mu.Lock()
	ctx := s.ctx
	s.runs++
	s.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}

	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.logger.Error("scheduled publish failed", observability.ErrAttrs(err)...)
		return
	}
	s.logger.Info("scheduled publish complete", "duration", time.Since(start))
}
