package domain

import (
	"fmt"
	"math"
)

// Descriptor is the complete state published by the backend for one radar
// frame. It is replaced wholesale on every successful fetch, never merged.
type Descriptor struct {
	Timestamp string `json:"timestamp"`
	Bounds    Bounds `json:"bounds"`
}

// Bounds holds the south-west and north-east corners of the overlay, each as
// a [lat, lon] pair.
type Bounds [2][2]float64

// DefaultBounds covers the continental US. Used only as the initial map
// viewport before the first descriptor arrives; it never anchors an overlay.
var DefaultBounds = Bounds{{24.5, -125.0}, {49.5, -66.5}}

// OverlayOpacity is the fixed opacity applied to the radar image overlay.
const OverlayOpacity = 0.7

// SouthWest returns the [lat, lon] south-west corner.
func (b Bounds) SouthWest() [2]float64 { return b[0] }

// NorthEast returns the [lat, lon] north-east corner.
func (b Bounds) NorthEast() [2]float64 { return b[1] }

// Validate rejects boxes the mapping library cannot anchor: non-finite
// coordinates, out-of-range lat/lon, or a south-west corner that is not
// strictly south and west of the north-east corner.
func (b Bounds) Validate() error {
	for _, corner := range b {
		for _, v := range corner {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("bounds contain non-finite coordinate %v", v)
			}
		}
		if corner[0] < -90 || corner[0] > 90 {
			return fmt.Errorf("latitude %v out of range [-90, 90]", corner[0])
		}
		if corner[1] < -180 || corner[1] > 180 {
			return fmt.Errorf("longitude %v out of range [-180, 180]", corner[1])
		}
	}
	if b[0][0] >= b[1][0] {
		return fmt.Errorf("south latitude %v must be below north latitude %v", b[0][0], b[1][0])
	}
	if b[0][1] >= b[1][1] {
		return fmt.Errorf("west longitude %v must be left of east longitude %v", b[0][1], b[1][1])
	}
	return nil
}
