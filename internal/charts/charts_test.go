package charts

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	assert.Equal(t, RangeDaily, ParseRange("daily"))
	assert.Equal(t, RangeWeekly, ParseRange("weekly"))
	assert.Equal(t, RangeHourly, ParseRange("hourly"))
	assert.Equal(t, RangeHourly, ParseRange("monthly"))
	assert.Equal(t, RangeHourly, ParseRange(""))
}

func TestVOCSeries(t *testing.T) {
	tests := []struct {
		r     Range
		n     int
		first string
		last  string
	}{
		{RangeHourly, 7, "00:00", "24:00"},
		{RangeDaily, 7, "Mon", "Sun"},
		{RangeWeekly, 4, "Week 1", "Week 4"},
	}
	for _, tt := range tests {
		t.Run(string(tt.r), func(t *testing.T) {
			pts := VOCSeries(tt.r)
			require.Len(t, pts, tt.n)
			assert.Equal(t, tt.first, pts[0].Time)
			assert.Equal(t, tt.last, pts[len(pts)-1].Time)
			for _, p := range pts {
				assert.Equal(t, float64(VOCThreshold), p.Threshold)
			}
		})
	}

	pts := VOCSeries(RangeHourly)
	pts[0].VOC = 999
	assert.Equal(t, 12.0, VOCSeries(RangeHourly)[0].VOC, "series is copied")
}

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   Trend
	}{
		{"hourly falls", []float64{18, 14, 10}, Trend{Current: 10, Previous: 14, Direction: TrendDown, Percent: "28.6"}},
		{"rise", []float64{12, 14}, Trend{Current: 14, Previous: 12, Direction: TrendUp, Percent: "16.7"}},
		{"flat is down", []float64{5, 5}, Trend{Current: 5, Previous: 5, Direction: TrendDown, Percent: "0.0"}},
		{"single point", []float64{7}, Trend{Current: 7, Previous: 0, Direction: TrendUp, Percent: "0.0"}},
		{"empty", nil, Trend{Direction: TrendDown, Percent: "0.0"}},
		{"zero previous", []float64{0, 9}, Trend{Current: 9, Previous: 0, Direction: TrendUp, Percent: "0.0"}},
		{"doubling", []float64{3, 10, 20}, Trend{Current: 20, Previous: 10, Direction: TrendUp, Percent: "100.0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTrend(tt.values))
		})
	}
}

func TestVOCTrend(t *testing.T) {
	assert.Equal(t, Trend{Current: 14, Previous: 12, Direction: TrendUp, Percent: "16.7"}, VOCTrend(RangeDaily))
	assert.Equal(t, Trend{Current: 17, Previous: 21, Direction: TrendDown, Percent: "19.0"}, VOCTrend(RangeWeekly))
}

func TestMetricValues(t *testing.T) {
	v, ok := MetricValues(MetricMissions)
	require.True(t, ok)
	assert.Equal(t, []float64{12, 15, 10, 18, 14, 16, 11}, v)

	_, ok = MetricValues("altitude")
	assert.False(t, ok)
}

func TestMissionOutcomesSumTo100(t *testing.T) {
	total := 0
	for _, s := range MissionOutcomes() {
		total += s.Value
	}
	assert.Equal(t, 100, total)
}

func TestMonitorRefresh(t *testing.T) {
	m := NewMonitor(rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, InitialRealTime(), m.Snapshot())

	prev := m.Snapshot()
	for i := 0; i < 50; i++ {
		cur := m.Refresh()
		assert.Contains(t, []int{3, 4}, cur.ActiveDrones)
		assert.GreaterOrEqual(t, cur.TotalFlightTime, prev.TotalFlightTime)
		assert.GreaterOrEqual(t, cur.AvgSpeed, 45.0)
		assert.LessOrEqual(t, cur.AvgSpeed, 55.0)
		assert.GreaterOrEqual(t, cur.WindSpeed, 10.0)
		assert.Less(t, cur.WindSpeed, 18.0)
		assert.Equal(t, "Clear", cur.Weather)
		prev = cur
	}
	assert.Equal(t, prev, m.Snapshot())
}

func TestRender(t *testing.T) {
	pages := []string{"voc", "voc-area", "missions", MetricEfficiency, MetricFuel, MetricMissions}
	for _, name := range pages {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, name, RangeDaily))
			assert.Contains(t, buf.String(), "<html")
			assert.Contains(t, buf.String(), "echarts")
		})
	}

	var buf bytes.Buffer
	assert.ErrorIs(t, Render(&buf, "radar", RangeDaily), ErrUnknownChart)
	assert.ErrorIs(t, RenderVOC(&buf, RangeDaily, "scatter"), ErrUnknownChart)
}
