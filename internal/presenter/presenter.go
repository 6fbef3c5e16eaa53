// Package presenter derives everything the render surface needs from the
// held descriptor. It is stateless: the same descriptor always composes the
// same view.
package presenter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/couchcryptid/radar-overlay-viewer/internal/domain"
)

// View is the capability boundary to the map surface: base tile layer, an
// optional image overlay with its anchor box and opacity, a status line, and
// the fixed legend.
type View struct {
	Status     string        `json:"status"`
	HasOverlay bool          `json:"has_overlay"`
	OverlayURL string        `json:"overlay_url,omitempty"`
	Timestamp  string        `json:"timestamp,omitempty"`
	Bounds     domain.Bounds `json:"bounds"`
	Opacity    float64       `json:"opacity"`
	TileURL    string        `json:"tile_url"`
	Legend     domain.Legend `json:"legend"`
}

// Compose builds the view for the current descriptor. A nil descriptor means
// no fetch has ever succeeded: the map gets the default viewport, no overlay,
// and a loading status. With a descriptor, the overlay URL and bounds both
// come from that one descriptor, so image and anchor always match.
func Compose(baseURL, tileURL string, d *domain.Descriptor) View {
	v := View{
		Status:  "Loading…",
		Bounds:  domain.DefaultBounds,
		Opacity: domain.OverlayOpacity,
		TileURL: tileURL,
		Legend:  domain.ReflectivityLegend,
	}
	if d == nil {
		return v
	}

	v.Status = fmt.Sprintf("Updated: %sZ", d.Timestamp)
	v.HasOverlay = true
	v.OverlayURL = OverlayURL(baseURL, d.Timestamp)
	v.Timestamp = d.Timestamp
	v.Bounds = d.Bounds
	return v
}

// OverlayURL builds the cache-busted image URL. The timestamp rides along as
// a query parameter so every distinct frame is a distinct resource to the
// browser, even when the geography has not moved.
func OverlayURL(baseURL, timestamp string) string {
	q := url.Values{"t": {timestamp}}
	return strings.TrimSuffix(baseURL, "/") + "/static/latest.png?" + q.Encode()
}
