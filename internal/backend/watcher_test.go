package backend

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/agent-console/internal/registry"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func openRegistry(t *testing.T, path string) *registry.Registry {
	t.Helper()
	reg, err := registry.Open(path)
	if err != nil {
		t.Fatalf("open registry: %v", err)
	}
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func drain(t *testing.T, w *Watcher) {
	t.Helper()
	w.Stop()
	w.Wait()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("events channel did not close")
		}
	}
}

func nextEvent(t *testing.T, w *Watcher, timeout time.Duration) Event {
	t.Helper()
	select {
	case evt, ok := <-w.Events():
		if !ok {
			t.Fatalf("events channel closed unexpectedly")
		}
		return evt
	case <-time.After(timeout):
		t.Fatalf("no event within %s", timeout)
	}
	return Event{}
}

func TestWatcherEmitsInitialSnapshot(t *testing.T) {
	reg := openRegistry(t, ":memory:")
	if err := reg.Seed(context.Background()); err != nil {
		t.Fatalf("seed registry: %v", err)
	}

	w := NewWatcher(reg, time.Hour)
	defer drain(t, w)

	evt := nextEvent(t, w, 5*time.Second)
	if evt.Kind != KindDeployments {
		t.Fatalf("unexpected event kind %v", evt.Kind)
	}
	if evt.Err != nil {
		t.Fatalf("unexpected poll error: %v", evt.Err)
	}
	snap, ok := evt.Data.(registry.Snapshot)
	if !ok {
		t.Fatalf("unexpected event payload %T", evt.Data)
	}
	if len(snap.Deployments) == 0 {
		t.Fatalf("expected seeded deployments in snapshot")
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	reg := openRegistry(t, ":memory:")
	w := NewWatcher(reg, time.Hour)
	drain(t, w)
}

func TestWatcherWakesOnDatabaseWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")
	reg := openRegistry(t, path)

	w := NewWatcher(reg, time.Hour)
	defer drain(t, w)

	first := nextEvent(t, w, 5*time.Second)
	if first.Err != nil {
		t.Fatalf("unexpected poll error: %v", first.Err)
	}

	d := registry.Deployment{
		ID:        "dep-1",
		Name:      "sentiment-api",
		Agent:     "atlas",
		Env:       "prod",
		Status:    registry.StatusRunning,
		Replicas:  3,
		UpdatedAt: time.Now(),
	}
	if err := reg.Upsert(context.Background(), d); err != nil {
		t.Fatalf("upsert deployment: %v", err)
	}

	// The poll interval is an hour, so a prompt follow-up event can only
	// come from the filesystem wakeup.
	deadline := time.After(10 * time.Second)
	for {
		select {
		case evt, ok := <-w.Events():
			if !ok {
				t.Fatalf("events channel closed unexpectedly")
			}
			if evt.Err != nil {
				t.Fatalf("unexpected poll error: %v", evt.Err)
			}
			snap, ok := evt.Data.(registry.Snapshot)
			if !ok {
				t.Fatalf("unexpected event payload %T", evt.Data)
			}
			if len(snap.Deployments) == 1 {
				return
			}
		case <-deadline:
			t.Fatalf("no snapshot with the written deployment arrived")
		}
	}
}

func TestThrottleEnforcesMinimumInterval(t *testing.T) {
	th := newThrottle(50 * time.Millisecond)
	start := time.Now()
	th.wait()
	th.wait()
	if elapsed := time.Since(start); elapsed < 45*time.Millisecond {
		t.Fatalf("expected second wait to be throttled, elapsed %s", elapsed)
	}
}

func TestThrottleZeroIntervalIsNoop(t *testing.T) {
	th := newThrottle(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		th.wait()
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected no throttling, elapsed %s", elapsed)
	}
}
