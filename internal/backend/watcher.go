package backend

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/agent-console/internal/registry"
	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindDeployments Kind = iota
)

// Event conveys updated data or an error from a registry poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Watcher polls the deployment registry at a fixed interval and publishes
// events. Filesystem notifications on the database file trigger an early
// poll so external writes show up without waiting out the interval.
type Watcher struct {
	reg      *registry.Registry
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wake   chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls the registry every interval.
func NewWatcher(reg *registry.Registry, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		reg:      reg,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		wake:     make(chan struct{}, 1),
	}

	w.startDeploymentPoller()
	w.startFileWatcher()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all watcher goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startDeploymentPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindDeployments, func(ctx context.Context) (interface{}, error) {
		throttle.wait()
		return w.reg.List(ctx)
	})
}

// startFileWatcher wakes the poller when the database file changes. The
// watch is best effort: if it cannot be established the interval poll still
// picks up changes, just later.
func (w *Watcher) startFileWatcher() {
	path := w.reg.Path()
	if path == "" {
		return
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	// Watch the directory rather than the file so WAL side files and
	// atomic replacements of the database are seen too.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return
	}
	base := filepath.Base(path)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer fw.Close()
		for {
			select {
			case <-w.ctx.Done():
				return
			case evt, ok := <-fw.Events:
				if !ok {
					return
				}
				if !strings.HasPrefix(filepath.Base(evt.Name), base) {
					continue
				}
				select {
				case w.wake <- struct{}{}:
				default:
				}
			case _, ok := <-fw.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		case <-w.wake:
			if !emit() {
				return
			}
		}
	}
}

// throttle ensures a minimum interval between successive operations.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	if interval <= 0 {
		return &throttle{}
	}
	return &throttle{interval: interval}
}

func (t *throttle) wait() {
	if t == nil || t.interval <= 0 {
		return
	}
	for {
		t.mu.Lock()
		wait := time.Until(t.next)
		if wait <= 0 {
			t.next = time.Now().Add(t.interval)
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()
		if wait > t.interval {
			wait = t.interval
		}
		time.Sleep(wait)
	}
}
