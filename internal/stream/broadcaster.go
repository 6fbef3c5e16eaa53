// Package stream pushes view updates to the browser over Server-Sent Events.
//
// Each connection immediately receives the current view, then one message per
// descriptor replacement:
//
//	data: {"status":"Updated: ...Z","overlay_url":"...","bounds":[[...],[...]],...}\n\n
//
// Keep-alive comments (:\n\n) are written on an interval so idle connections
// survive proxies.
package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/couchcryptid/radar-overlay-viewer/internal/domain"
	"github.com/couchcryptid/radar-overlay-viewer/internal/observability"
	"github.com/couchcryptid/radar-overlay-viewer/internal/presenter"
)

// ViewSource returns the view composed from the currently held descriptor.
type ViewSource func() presenter.View

// Broadcaster fans view updates out to connected SSE clients. It implements
// the poller's Notifier.
type Broadcaster struct {
	source    ViewSource
	keepalive time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu      sync.Mutex
	clients map[chan presenter.View]struct{}
}

// NewBroadcaster creates a Broadcaster reading current state from source.
func NewBroadcaster(source ViewSource, keepalive time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Broadcaster {
	return &Broadcaster{
		source:    source,
		keepalive: keepalive,
		logger:    logger,
		metrics:   metrics,
		clients:   make(map[chan presenter.View]struct{}),
	}
}

// DescriptorUpdated recomposes the view from the store and fans it out. The
// view is rebuilt from held state rather than the notifying descriptor so a
// slower overlapping fetch cannot push a frame the store no longer holds.
func (b *Broadcaster) DescriptorUpdated(_ *domain.Descriptor) {
	v := b.source()

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- v:
		default:
			// Slow client; it will catch up on the next update.
		}
	}
}

func (b *Broadcaster) register() chan presenter.View {
	ch := make(chan presenter.View, 4)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) unregister(ch chan presenter.View) {
	b.mu.Lock()
	delete(b.clients, ch)
	b.mu.Unlock()
}

// ServeHTTP serves one SSE connection until the client goes away.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ch := b.register()
	defer b.unregister(ch)
	b.metrics.StreamClients.Inc()
	defer b.metrics.StreamClients.Dec()
	b.logger.Debug("stream connected", "remote_addr", r.RemoteAddr)

	rc := http.NewResponseController(w)
	send := func(v presenter.View) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal view: %w", err)
		}
		if err := rc.SetWriteDeadline(time.Now().Add(30 * time.Second)); err != nil {
			b.logger.Debug("could not set write deadline", "error", err)
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		b.metrics.StreamMessages.Inc()
		return nil
	}

	// First message is always the current view, so reconnecting clients
	// render immediately instead of waiting out the poll interval.
	if err := send(b.source()); err != nil {
		return
	}

	keepalive := time.NewTicker(b.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case <-r.Context().Done():
			b.logger.Debug("stream disconnected", "remote_addr", r.RemoteAddr)
			return
		case v := <-ch:
			if err := send(v); err != nil {
				return
			}
		case <-keepalive.C:
			if err := rc.SetWriteDeadline(time.Now().Add(30 * time.Second)); err != nil {
				b.logger.Debug("could not set write deadline", "error", err)
			}
			if _, err := fmt.Fprint(w, ":\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
