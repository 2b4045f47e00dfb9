package client

import (
	"context"
	"sync"
	"time"

	"wellnest/tracker-api/internal/aggregate"
	"wellnest/tracker-api/internal/service"
)

// FetchFunc loads a fresh dashboard.
type FetchFunc func(ctx context.Context) (*service.Dashboard, error)

// Watcher re-fetches the dashboard on an interval. Fetches may overlap;
// a fetch that finishes after a newer one has been applied is dropped.
type Watcher struct {
	fetch    FetchFunc
	interval time.Duration
	guard    aggregate.SnapshotGuard[*service.Dashboard]
	wg       sync.WaitGroup

	// OnUpdate is called with every applied dashboard.
	OnUpdate func(*service.Dashboard)
	// OnError is called when a fetch fails.
	OnError func(error)
}

func NewWatcher(fetch FetchFunc, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Watcher{fetch: fetch, interval: interval}
}

// Run fetches immediately and then on every tick until ctx is done. It
// returns only after all in-flight fetches have finished.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer w.wg.Wait()

	w.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

// Current returns the newest applied dashboard.
func (w *Watcher) Current() (*service.Dashboard, bool) {
	return w.guard.Current()
}

func (w *Watcher) refresh(ctx context.Context) {
	seq := w.guard.Begin()
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		d, err := w.fetch(ctx)
		if err != nil {
			if w.OnError != nil && ctx.Err() == nil {
				w.OnError(err)
			}
			return
		}
		if w.guard.Apply(seq, d) && w.OnUpdate != nil {
			w.OnUpdate(d)
		}
	}()
}
