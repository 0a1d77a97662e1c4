package charts

import (
	"math"
	"math/rand/v2"
	"sync"
)

// DayMetrics is one day of fleet performance.
type DayMetrics struct {
	Day        string  `json:"day"`
	Efficiency int     `json:"efficiency"` // Percent.
	Fuel       int     `json:"fuel"`
	Missions   int     `json:"missions"`
	FlightTime float64 `json:"flightTime"` // Hours.
	Distance   int     `json:"distance"`   // Kilometres.
}

var efficiencyData = []DayMetrics{
	{"Mon", 87, 45, 12, 8.5, 245},
	{"Tue", 92, 38, 15, 9.2, 312},
	{"Wed", 85, 52, 10, 7.8, 198},
	{"Thu", 94, 35, 18, 10.1, 387},
	{"Fri", 89, 42, 14, 8.9, 276},
	{"Sat", 91, 40, 16, 9.5, 298},
	{"Sun", 88, 47, 11, 8.2, 234},
}

// Efficiency returns a copy of the weekly performance series.
func Efficiency() []DayMetrics {
	out := make([]DayMetrics, len(efficiencyData))
	copy(out, efficiencyData)
	return out
}

// Performance metrics selectable on the efficiency chart.
const (
	MetricEfficiency = "efficiency"
	MetricFuel       = "fuel"
	MetricMissions   = "missions"
)

// MetricValues extracts one metric from the series. ok is false for
// unknown metric names.
func MetricValues(metric string) (values []float64, ok bool) {
	for _, d := range efficiencyData {
		switch metric {
		case MetricEfficiency:
			values = append(values, float64(d.Efficiency))
		case MetricFuel:
			values = append(values, float64(d.Fuel))
		case MetricMissions:
			values = append(values, float64(d.Missions))
		default:
			return nil, false
		}
	}
	return values, true
}

// Slice is one share of the mission outcome pie.
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// MissionOutcomes returns the mission success breakdown in percent.
func MissionOutcomes() []Slice {
	return []Slice{
		{"Successful", 85, "#10b981"},
		{"Partial", 12, "#f59e0b"},
		{"Failed", 3, "#ef4444"},
	}
}

// RealTime is the live metrics panel.
type RealTime struct {
	ActiveDrones    int     `json:"activeDrones"`
	TotalFlightTime float64 `json:"totalFlightTime"`
	AvgSpeed        float64 `json:"avgSpeed"`
	Weather         string  `json:"weather"`
	WindSpeed       float64 `json:"windSpeed"`
	Temperature     float64 `json:"temperature"`
}

// InitialRealTime is the panel before any refresh.
func InitialRealTime() RealTime {
	return RealTime{
		ActiveDrones:    4,
		TotalFlightTime: 62.2,
		AvgSpeed:        45.8,
		Weather:         "Clear",
		WindSpeed:       12,
		Temperature:     22,
	}
}

// Next simulates one refresh tick: 3 or 4 active drones, flight time grows
// by up to half an hour, speed in [45,55), wind in [10,18).
func (rt RealTime) Next(r *rand.Rand) RealTime {
	rt.ActiveDrones = r.IntN(2) + 3
	rt.TotalFlightTime = round1(rt.TotalFlightTime + r.Float64()*0.5)
	rt.AvgSpeed = round1(45 + r.Float64()*10)
	rt.WindSpeed = math.Floor(10 + r.Float64()*8)
	return rt
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Monitor holds the live panel between refreshes.
type Monitor struct {
	mu   sync.Mutex
	cur  RealTime
	rand *rand.Rand
}

// NewMonitor starts from InitialRealTime.
func NewMonitor(r *rand.Rand) *Monitor {
	return &Monitor{cur: InitialRealTime(), rand: r}
}

// Snapshot returns the current panel.
func (m *Monitor) Snapshot() RealTime {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Refresh advances the panel one tick and returns it.
func (m *Monitor) Refresh() RealTime {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cur = m.cur.Next(m.rand)
	return m.cur
}
