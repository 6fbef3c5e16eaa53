package poller_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/radar-overlay-viewer/internal/adapter/radarmeta"
	"github.com/couchcryptid/radar-overlay-viewer/internal/observability"
	"github.com/couchcryptid/radar-overlay-viewer/internal/poller"
)

// Exercises the poller against the real metadata client and a flapping fake
// backend: success, then an outage, then a newer frame.
func TestPoller_EndToEnd_BackendFlapping(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		switch calls.Add(1) {
		case 1:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"timestamp": "20251006-053530", "bounds": [[24.5, -125.0], [49.5, -66.5]]}`))
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"timestamp": "20251006-055532", "bounds": [[24.5, -125.0], [49.5, -66.5]]}`))
		}
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := radarmeta.NewClient(srv.URL, time.Second, logger)
	clk := clockwork.NewFakeClock()
	store := poller.NewStore(clk)
	p := poller.New(client, store, nil, 120*time.Second, clk, logger, observability.NewMetricsForTesting())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	require.Eventually(t, func() bool {
		d := store.Get()
		return d != nil && d.Timestamp == "20251006-053530"
	}, 2*time.Second, 10*time.Millisecond)

	// Outage: held descriptor survives the failed attempt.
	clk.BlockUntil(1)
	clk.Advance(120 * time.Second)
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, "20251006-053530", store.Get().Timestamp)

	// Backend recovers with a newer frame.
	clk.BlockUntil(1)
	clk.Advance(120 * time.Second)
	require.Eventually(t, func() bool {
		return store.Get().Timestamp == "20251006-055532"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
