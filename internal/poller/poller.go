// Package poller owns the metadata refresh lifecycle: fetch once on start,
// then on a fixed interval until cancelled.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/radar-overlay-viewer/internal/domain"
	"github.com/couchcryptid/radar-overlay-viewer/internal/observability"
)

// MetaFetcher retrieves the current descriptor from the backend.
type MetaFetcher interface {
	LatestMeta(ctx context.Context) (*domain.Descriptor, error)
}

// Notifier is told about each descriptor that replaced the held one, so the
// render surface can refresh without polling.
type Notifier interface {
	DescriptorUpdated(d *domain.Descriptor)
}

// Poller drives the refresh loop. Attempts are not deduplicated: a tick fires
// whether or not the previous fetch has resolved, overlapping attempts race,
// and the last one to complete determines the held descriptor.
type Poller struct {
	fetcher  MetaFetcher
	store    *Store
	notifier Notifier
	interval time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Poller. notifier may be nil.
func New(fetcher MetaFetcher, store *Store, notifier Notifier, interval time.Duration, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Poller {
	return &Poller{
		fetcher:  fetcher,
		store:    store,
		notifier: notifier,
		interval: interval,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// CheckReadiness returns nil once a descriptor is held.
func (p *Poller) CheckReadiness(_ context.Context) error {
	if p.store.Get() == nil {
		return errors.New("no descriptor fetched yet")
	}
	return nil
}

// Run polls until ctx is cancelled. The first attempt is launched
// immediately; every subsequent tick launches its own attempt regardless of
// in-flight ones. Cancellation stops the ticker only — an in-flight fetch may
// still complete and update the store, which is tolerated.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poller started", "interval", p.interval)
	p.metrics.PollerRunning.Set(1)
	p.metrics.DescriptorAge.Set(-1)
	defer p.metrics.PollerRunning.Set(0)

	go p.refresh(ctx)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			go p.refresh(ctx)
		}
	}
}

// refresh performs one attempt. Failures of any kind are logged and
// swallowed; the held descriptor is left untouched.
func (p *Poller) refresh(ctx context.Context) {
	start := p.clock.Now()

	d, err := p.fetcher.LatestMeta(ctx)
	if err != nil {
		p.metrics.FetchFailures.Inc()
		p.logger.Warn("metadata refresh failed", "error", err)
		return
	}

	p.store.Set(d)
	p.metrics.FetchSuccesses.Inc()
	p.metrics.FetchDuration.Observe(p.clock.Since(start).Seconds())
	p.metrics.DescriptorAge.Set(0)
	p.logger.Info("descriptor updated", "timestamp", d.Timestamp)

	if p.notifier != nil {
		p.notifier.DescriptorUpdated(d)
	}
}
