// Package scheduler runs periodic maintenance jobs: expired session cleanup
// and idle rate-limiter bucket sweeps.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/crucial707/springboard/internal/metrics"
	"github.com/crucial707/springboard/internal/session"
	"github.com/robfig/cron/v3"
)

// DefaultSessionCleanup runs the purge at the top of every minute.
const DefaultSessionCleanup = "0 * * * * *"

const jobTimeout = 30 * time.Second

// Scheduler wraps a seconds-enabled cron. A job that is still running when
// its next tick fires is skipped.
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Add registers job under name on the cron expression expr.
func (s *Scheduler) Add(name, expr string, job func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(expr, func() { runOnce(name, job) })
	if err != nil {
		return fmt.Errorf("scheduler: invalid cron %q for %s: %w", expr, name, err)
	}
	slog.Info("scheduler: job scheduled", "job", name, "cron", expr)
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func runOnce(name string, job func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if err := job(ctx); err != nil {
		slog.Error("scheduler: job failed", "job", name, "error", err)
	}
}

// AddSessionCleanup schedules purger.PurgeExpired; an empty expr means
// DefaultSessionCleanup.
func (s *Scheduler) AddSessionCleanup(expr string, purger session.Purger) error {
	if expr == "" {
		expr = DefaultSessionCleanup
	}
	return s.Add("session-cleanup", expr, func(ctx context.Context) error {
		n, err := purger.PurgeExpired(ctx)
		if err != nil {
			return fmt.Errorf("purge expired sessions: %w", err)
		}
		if n > 0 {
			metrics.AddSessionsPurged(n)
			slog.Info("scheduler: purged expired sessions", "count", n)
		}
		return nil
	})
}
