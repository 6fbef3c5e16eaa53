package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	_ "github.com/joho/godotenv/autoload"

	httpadapter "github.com/couchcryptid/radar-overlay-viewer/internal/adapter/http"
	"github.com/couchcryptid/radar-overlay-viewer/internal/adapter/radarmeta"
	"github.com/couchcryptid/radar-overlay-viewer/internal/config"
	"github.com/couchcryptid/radar-overlay-viewer/internal/observability"
	"github.com/couchcryptid/radar-overlay-viewer/internal/poller"
	"github.com/couchcryptid/radar-overlay-viewer/internal/presenter"
	"github.com/couchcryptid/radar-overlay-viewer/internal/stream"
	"github.com/couchcryptid/radar-overlay-viewer/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	store := poller.NewStore(clock)
	view := func() presenter.View {
		return presenter.Compose(cfg.BaseURL, cfg.TileURL, store.Get())
	}

	client := radarmeta.NewClient(cfg.BaseURL, cfg.FetchTimeout, logger)
	broadcaster := stream.NewBroadcaster(view, cfg.SSEKeepalive, logger, metrics)
	p := poller.New(client, store, broadcaster, cfg.PollInterval, clock, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, view, broadcaster, web.Content, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start metadata poller.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("poller error", "error", err)
		}
	}()

	// Keep the descriptor age gauge current between refreshes.
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.DescriptorAge.Set(store.AgeSeconds())
			case <-ctx.Done():
				return
			}
		}
	}()

	logger.Info("viewer started",
		"backend", cfg.BaseURL,
		"poll_interval", cfg.PollInterval,
		"addr", cfg.HTTPAddr,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
