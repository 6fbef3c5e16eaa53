package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v9"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// BaseURL is the radar backend host serving /api/latest-meta and
	// /static/latest.png.
	BaseURL string `env:"RADAR_BASE_URL" envDefault:"http://localhost:8000"`

	// PollInterval is the fixed cadence between metadata refresh attempts.
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"120s"`

	// FetchTimeout bounds a single metadata request via the HTTP client;
	// the poller itself imposes no deadline.
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"30s"`

	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	TileURL         string        `env:"TILE_URL" envDefault:"https://tile.openstreetmap.org/{z}/{x}/{y}.png"`
	SSEKeepalive    time.Duration `env:"SSE_KEEPALIVE" envDefault:"30s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("RADAR_BASE_URL must be an http(s) URL, got %q", cfg.BaseURL)
	}

	if cfg.PollInterval <= 0 {
		return nil, errors.New("POLL_INTERVAL must be positive")
	}
	if cfg.FetchTimeout <= 0 {
		return nil, errors.New("FETCH_TIMEOUT must be positive")
	}
	if cfg.SSEKeepalive <= 0 {
		return nil, errors.New("SSE_KEEPALIVE must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.TileURL == "" {
		return nil, errors.New("TILE_URL is required")
	}

	return cfg, nil
}
