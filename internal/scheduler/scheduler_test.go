package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingPurger struct {
	calls atomic.Int32
	err   error
}

func (p *countingPurger) PurgeExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	return 2, p.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if !cond() {
		t.Fatal("condition not met before deadline")
	}
}

func TestAdd_InvalidExpr(t *testing.T) {
	s := New()
	if err := s.Add("noop", "not a cron", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
	if err := s.AddSessionCleanup("61 * * * * *", &countingPurger{}); err == nil {
		t.Fatal("expected error for out-of-range seconds field")
	}
}

func TestAddSessionCleanup_RunsPurge(t *testing.T) {
	p := &countingPurger{}
	s := New()
	if err := s.AddSessionCleanup("@every 1s", p); err != nil {
		t.Fatalf("AddSessionCleanup: %v", err)
	}
	s.Start()
	defer s.Stop(context.Background())

	waitFor(t, func() bool { return p.calls.Load() > 0 })
}

func TestAdd_RunsJobWithDeadline(t *testing.T) {
	var hadDeadline atomic.Bool
	var runs atomic.Int32
	s := New()
	err := s.Add("probe", "@every 1s", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hadDeadline.Store(ok)
		runs.Add(1)
		return errors.New("ignored")
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	s.Start()
	defer s.Stop(context.Background())

	waitFor(t, func() bool { return runs.Load() > 0 })
	if !hadDeadline.Load() {
		t.Error("job context has no deadline")
	}
}

func TestRunOnce_LogsErrorWithoutPanicking(t *testing.T) {
	p := &countingPurger{err: errors.New("db down")}
	s := New()
	if err := s.AddSessionCleanup("", p); err != nil {
		t.Fatalf("AddSessionCleanup: %v", err)
	}
	runOnce("session-cleanup", func(ctx context.Context) error {
		_, err := p.PurgeExpired(ctx)
		return err
	})
	if p.calls.Load() != 1 {
		t.Errorf("expected one call, got %d", p.calls.Load())
	}
}
