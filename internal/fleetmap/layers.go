// Package fleetmap derives the map and VOC heatmap layers, holds the tile
// style and selection of one map view, and tracks whether the tile source
// has loaded.
package fleetmap

// Map framing.
const (
	CenterLat = 40.7128
	CenterLng = -74.0060
	Zoom      = 11
	MaxZoom   = 18

	MarkerRadius = 10
)

// Marker colours by drone status.
const (
	ColorActive    = "#10b981"
	ColorCharging  = "#f59e0b"
	ColorReturning = "#3b82f6"
	ColorOther     = "#ef4444"
)

// Position is a drone's last reported location.
type Position struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Status string  `json:"status"` // Lowercase: active, charging, returning, maintenance.

	Battery  int    `json:"battery"`
	Mission  string `json:"mission"`
	Altitude int    `json:"altitude"` // Feet.
}

// Zone is a VOC monitoring area.
type Zone struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	VOC  float64 `json:"voc"`  // PPM.
	Size float64 `json:"size"` // Coverage radius in metres.
}

var positions = []Position{
	{"D001", "Drone 1 (Alpha)", 40.7128, -74.0060, "active", 85, "Environmental Survey", 120},
	{"D002", "Drone 2 (Beta)", 40.7589, -73.9851, "charging", 23, "Standby", 0},
	{"D003", "Drone 3 (Gamma)", 40.7505, -73.9934, "active", 67, "Traffic Monitoring", 150},
	{"D004", "Drone 4 (Delta)", 40.7282, -73.7949, "maintenance", 0, "Maintenance", 0},
	{"D005", "Drone 5 (Echo)", 40.7614, -73.9776, "active", 92, "Security Patrol", 100},
	{"D006", "Drone 6 (Foxtrot)", 40.7831, -73.9712, "returning", 45, "Package Delivery", 80},
}

var zones = []Zone{
	{"A", "Zone A - Financial District", 40.7128, -74.0060, 15, 800},
	{"B", "Zone B - Times Square", 40.7589, -73.9851, 28, 1200},
	{"C", "Zone C - Central Park", 40.7505, -73.9934, 42, 1500},
	{"D", "Zone D - JFK Airport", 40.7282, -73.7949, 8, 2000},
	{"E", "Zone E - Brooklyn Bridge", 40.7061, -73.9969, 35, 600},
	{"F", "Zone F - Statue of Liberty", 40.6892, -74.0445, 12, 400},
}

// Positions returns a copy of the mock drone positions.
func Positions() []Position {
	out := make([]Position, len(positions))
	copy(out, positions)
	return out
}

// Zones returns a copy of the mock VOC zones.
func Zones() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// StatusColor maps a lowercase map status to its marker colour.
func StatusColor(status string) string {
	switch status {
	case "active":
		return ColorActive
	case "charging":
		return ColorCharging
	case "returning":
		return ColorReturning
	default:
		return ColorOther
	}
}

// Risk is the heatmap classification of a VOC reading.
type Risk struct {
	Level   string  `json:"level"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

// ClassifyVOC buckets a reading: above 30 is high risk, above 15 moderate,
// everything else safe.
func ClassifyVOC(voc float64) Risk {
	switch {
	case voc > 30:
		return Risk{Level: "High Risk", Color: "#ef4444", Opacity: 0.8}
	case voc > 15:
		return Risk{Level: "Moderate", Color: "#f59e0b", Opacity: 0.6}
	default:
		return Risk{Level: "Safe", Color: "#10b981", Opacity: 0.4}
	}
}

// Circle is one drawable layer element.
type Circle struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Radius  float64 `json:"radius"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	Detail  string  `json:"detail"`
}

// DroneLayer renders one fixed-radius marker per position.
func DroneLayer(ps []Position) []Circle {
	out := make([]Circle, 0, len(ps))
	for _, p := range ps {
		out = append(out, Circle{
			ID:      p.ID,
			Label:   p.Name,
			Lat:     p.Lat,
			Lng:     p.Lng,
			Radius:  MarkerRadius,
			Color:   StatusColor(p.Status),
			Opacity: 1,
			Detail:  p.Status,
		})
	}
	return out
}

// HeatmapLayer renders one circle per zone sized by its coverage.
func HeatmapLayer(zs []Zone) []Circle {
	out := make([]Circle, 0, len(zs))
	for _, z := range zs {
		risk := ClassifyVOC(z.VOC)
		out = append(out, Circle{
			ID:      z.ID,
			Label:   z.Name,
			Lat:     z.Lat,
			Lng:     z.Lng,
			Radius:  z.Size,
			Color:   risk.Color,
			Opacity: risk.Opacity,
			Detail:  risk.Level,
		})
	}
	return out
}
