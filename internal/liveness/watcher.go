package liveness

import (
	"context"
	"time"

	"libradesk/internal/logging"
	"libradesk/internal/models"
	"libradesk/internal/transport"
)

const defaultProbeTimeout = 3 * time.Second

// Prober is the lightweight read surface the watcher uses to check that the
// users and books services answer at all. The fetched data is discarded;
// refreshing the cache stays a user-triggered action.
type Prober interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListBooks(ctx context.Context) ([]models.Book, error)
}

// Watcher re-probes the users and books services on a fixed period so the
// status dots reflect reality even when the user performs no action.
type Watcher struct {
	api          Prober
	monitor      *Monitor
	interval     time.Duration
	probeTimeout time.Duration
	log          logging.Logger
}

func NewWatcher(api Prober, monitor *Monitor, interval time.Duration, log logging.Logger) *Watcher {
	return &Watcher{
		api:          api,
		monitor:      monitor,
		interval:     interval,
		probeTimeout: defaultProbeTimeout,
		log:          log.With("component", "liveness"),
	}
}

// Run blocks until ctx is canceled, probing every interval. Probes carry a
// short timeout so a hung service cannot make probe goroutines pile up behind
// the ticker.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// probe checks each service under its own deadline. One hung service must
// not consume the other's timeout budget.
func (w *Watcher) probe(ctx context.Context) {
	uctx, cancel := context.WithTimeout(ctx, w.probeTimeout)
	_, err := w.api.ListUsers(uctx)
	cancel()
	w.monitor.Report(transport.ServiceUsers, err)
	if err != nil {
		w.log.Warn(ctx, "users probe failed", "error", err)
	}

	bctx, cancel := context.WithTimeout(ctx, w.probeTimeout)
	_, err = w.api.ListBooks(bctx)
	cancel()
	w.monitor.Report(transport.ServiceBooks, err)
	if err != nil {
		w.log.Warn(ctx, "books probe failed", "error", err)
	}
}
