package domain

// Legend describes the fixed reflectivity color scale shown next to the map.
// It is static presentation: nothing in it derives from a fetched descriptor.
type Legend struct {
	Min   float64   `json:"min"`
	Max   float64   `json:"max"`
	Unit  string    `json:"unit"`
	Stops []string  `json:"stops"`
	Ticks []float64 `json:"ticks"`
}

// ReflectivityLegend maps 0–75 dBZ onto a six-stop ramp sampled from the
// turbo colormap the backend rasterizes with.
var ReflectivityLegend = Legend{
	Min:   0,
	Max:   75,
	Unit:  "dBZ",
	Stops: []string{"#30123b", "#3e9bfe", "#46f884", "#e1dd37", "#f05b12", "#7a0403"},
	Ticks: []float64{0, 15, 30, 45, 60, 75},
}
