// Package domain models the radar overlay descriptor published by the MRMS
// rendering backend.
//
// # Data Source
//
// The backend watches the NOAA MRMS ReflectivityAtLowestAltitude feed,
// rasterizes the newest GRIB2 frame to a single PNG, and publishes a small
// JSON descriptor alongside it:
//
//	GET {base}/api/latest-meta   → {"timestamp": "...", "bounds": [[s,w],[n,e]]}
//	GET {base}/static/latest.png → the rasterized frame
//
// The timestamp is an opaque frame identifier taken from the MRMS filename
// (e.g. "20251006-053530"). This viewer never parses or orders timestamps;
// their only job is to distinguish one frame from the next so the image URL
// changes whenever the frame does.
//
// # Bounds
//
// Bounds are a pair of WGS-84 corners, south-west first, matching the
// Leaflet ImageOverlay convention. Bounds and the PNG they anchor always come
// from the same descriptor fetch; the two are replaced together and never
// mixed across fetches.
package domain
