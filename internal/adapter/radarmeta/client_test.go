package radarmeta

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/radar-overlay-viewer/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second, testLogger())
}

func TestClient_LatestMeta_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/latest-meta", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"timestamp": "20251006-053530",
			"bounds":    [][]float64{{24.5, -125.0}, {49.5, -66.5}},
		}))
	}))
	defer srv.Close()

	d, err := testClient(srv.URL).LatestMeta(context.Background())
	require.NoError(t, err)

	want := &domain.Descriptor{
		Timestamp: "20251006-053530",
		Bounds:    domain.Bounds{{24.5, -125.0}, {49.5, -66.5}},
	}
	assert.Empty(t, cmp.Diff(want, d))
}

func TestClient_LatestMeta_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LatestMeta(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_LatestMeta_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"timestamp": 12`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LatestMeta(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestClient_LatestMeta_MissingTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bounds": [[24.5, -125.0], [49.5, -66.5]]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LatestMeta(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
	assert.Contains(t, err.Error(), "timestamp")
}

func TestClient_LatestMeta_WrongBoundsShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"single corner", `{"timestamp": "t1", "bounds": [[24.5, -125.0]]}`},
		{"three corners", `{"timestamp": "t1", "bounds": [[1,2],[3,4],[5,6]]}`},
		{"corner with one coordinate", `{"timestamp": "t1", "bounds": [[24.5], [49.5, -66.5]]}`},
		{"flat array", `{"timestamp": "t1", "bounds": [24.5, -125.0, 49.5, -66.5]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := testClient(srv.URL).LatestMeta(context.Background())
			require.ErrorIs(t, err, ErrFetchFailed)
		})
	}
}

func TestClient_LatestMeta_InvalidBounds(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Corners swapped: north below south.
		_, _ = w.Write([]byte(`{"timestamp": "t1", "bounds": [[49.5, -66.5], [24.5, -125.0]]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).LatestMeta(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
}

func TestClient_LatestMeta_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond, testLogger())
	_, err := c.LatestMeta(context.Background())
	require.ErrorIs(t, err, ErrFetchFailed)
}
