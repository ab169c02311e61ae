package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the poller on a cron schedule, skipping ticks while a pass is in flight
type Scheduler struct {
	poller  *Poller
	cron    *cron.Cron
	cronID  cron.EntryID
	mu      sync.Mutex
	running atomic.Bool
	wg      sync.WaitGroup
	logger  *slog.Logger
}

// NewScheduler creates a Scheduler for p
func NewScheduler(p *Poller) *Scheduler {
	return &Scheduler{
		poller: p,
		cron:   cron.New(),
		logger: p.logger.With("component", "scheduler"),
	}
}

// Start registers the schedule, kicks off an immediate pass and starts the cron loop
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.cron.AddFunc(schedule, func() { s.Trigger(ctx) })
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}
	s.cronID = id

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Trigger(ctx)
	}()

	s.cron.Start()
	s.logger.Info("poll schedule started", "schedule", schedule)
	return nil
}

// Trigger runs one pass unless one is already running. It reports whether a pass ran.
func (s *Scheduler) Trigger(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Info("poll skipped: previous pass still running")
		return false
	}
	defer s.running.Store(false)

	if _, err := s.poller.RunOnce(ctx); err != nil {
		s.logger.Error("poll pass had errors", "error", err)
	}
	return true
}

// Stop halts the schedule and waits for running passes
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	<-s.cron.Stop().Done()
	s.wg.Wait()
}
