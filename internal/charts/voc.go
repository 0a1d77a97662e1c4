// Package charts holds the static telemetry datasets behind the analytics
// views, the trend summary, and their HTML rendering with go-echarts.
package charts

import (
	"fmt"
	"math"
)

// Range selects which VOC dataset is shown.
type Range string

const (
	RangeHourly Range = "hourly"
	RangeDaily  Range = "daily"
	RangeWeekly Range = "weekly"
)

// Ranges lists the selectable ranges in display order.
var Ranges = []Range{RangeHourly, RangeDaily, RangeWeekly}

// ParseRange maps a range key to a Range. Unknown keys fall back to hourly.
func ParseRange(s string) Range {
	switch Range(s) {
	case RangeDaily:
		return RangeDaily
	case RangeWeekly:
		return RangeWeekly
	default:
		return RangeHourly
	}
}

// VOCThreshold is the safe VOC level in PPM drawn on every VOC chart.
const VOCThreshold = 20

// Point is one VOC reading.
type Point struct {
	Time      string  `json:"time"`
	VOC       float64 `json:"voc"`
	Threshold float64 `json:"threshold"`
}

var vocData = map[Range][]Point{
	RangeHourly: {
		{"00:00", 12, VOCThreshold},
		{"04:00", 8, VOCThreshold},
		{"08:00", 15, VOCThreshold},
		{"12:00", 22, VOCThreshold},
		{"16:00", 18, VOCThreshold},
		{"20:00", 14, VOCThreshold},
		{"24:00", 10, VOCThreshold},
	},
	RangeDaily: {
		{"Mon", 15, VOCThreshold},
		{"Tue", 18, VOCThreshold},
		{"Wed", 22, VOCThreshold},
		{"Thu", 16, VOCThreshold},
		{"Fri", 19, VOCThreshold},
		{"Sat", 12, VOCThreshold},
		{"Sun", 14, VOCThreshold},
	},
	RangeWeekly: {
		{"Week 1", 16, VOCThreshold},
		{"Week 2", 18, VOCThreshold},
		{"Week 3", 21, VOCThreshold},
		{"Week 4", 17, VOCThreshold},
	},
}

// VOCSeries returns a copy of the dataset for r.
func VOCSeries(r Range) []Point {
	src := vocData[ParseRange(string(r))]
	out := make([]Point, len(src))
	copy(out, src)
	return out
}

// Trend directions.
const (
	TrendUp   = "up"
	TrendDown = "down"
)

// Trend summarizes the last two points of a series.
type Trend struct {
	Current   float64 `json:"current"`
	Previous  float64 `json:"previous"`
	Direction string  `json:"direction"`
	Percent   string  `json:"percent"`
}

// ComputeTrend compares the last value with the one before it. Missing
// values count as 0, and a zero previous value gives a percent of "0.0".
func ComputeTrend(values []float64) Trend {
	var t Trend
	if n := len(values); n > 0 {
		t.Current = values[n-1]
		if n > 1 {
			t.Previous = values[n-2]
		}
	}
	t.Direction = TrendDown
	if t.Current > t.Previous {
		t.Direction = TrendUp
	}
	pct := 0.0
	if t.Previous != 0 {
		pct = math.Abs((t.Current - t.Previous) / t.Previous * 100)
	}
	t.Percent = fmt.Sprintf("%.1f", pct)
	return t
}

// VOCTrend is ComputeTrend over the VOC values of r.
func VOCTrend(r Range) Trend {
	pts := VOCSeries(r)
	values := make([]float64, len(pts))
	for i, p := range pts {
		values[i] = p.VOC
	}
	return ComputeTrend(values)
}
