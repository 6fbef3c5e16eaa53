// Package radarmeta fetches the latest-frame descriptor from the radar
// rendering backend.
package radarmeta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/couchcryptid/radar-overlay-viewer/internal/domain"
)

// ErrFetchFailed is the single failure kind for metadata refresh attempts.
// Network errors, non-success statuses, undecodable bodies, and malformed
// bounds all wrap it; the poller treats every variant identically.
var ErrFetchFailed = errors.New("metadata fetch failed")

const metaPath = "/api/latest-meta"

// Client retrieves descriptors from the backend's latest-meta endpoint.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a metadata client for the given backend base URL.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: rc, logger: logger}
}

// metaResponse is the wire shape. Bounds stay nested slices here so arity
// errors are caught before conversion into the fixed-size domain type, which
// encoding/json would otherwise silently pad or truncate.
type metaResponse struct {
	Timestamp string      `json:"timestamp"`
	Bounds    [][]float64 `json:"bounds"`
}

// LatestMeta performs one GET of the descriptor. The returned descriptor is
// fully validated; any failure wraps ErrFetchFailed.
func (c *Client) LatestMeta(ctx context.Context) (*domain.Descriptor, error) {
	resp, err := c.http.R().SetContext(ctx).Get(metaPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: status %d from %s", ErrFetchFailed, resp.StatusCode(), resp.Request.URL)
	}

	var m metaResponse
	if err := json.Unmarshal(resp.Body(), &m); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrFetchFailed, err)
	}

	d, err := m.toDescriptor()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return d, nil
}

func (m metaResponse) toDescriptor() (*domain.Descriptor, error) {
	if m.Timestamp == "" {
		return nil, errors.New("missing timestamp")
	}
	if len(m.Bounds) != 2 || len(m.Bounds[0]) != 2 || len(m.Bounds[1]) != 2 {
		return nil, fmt.Errorf("bounds must be two [lat, lon] corners, got %v", m.Bounds)
	}

	b := domain.Bounds{
		{m.Bounds[0][0], m.Bounds[0][1]},
		{m.Bounds[1][0], m.Bounds[1][1]},
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	return &domain.Descriptor{Timestamp: m.Timestamp, Bounds: b}, nil
}
