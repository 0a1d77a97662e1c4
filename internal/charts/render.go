package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrUnknownChart is returned for chart or metric names with no renderer.
var ErrUnknownChart = errors.New("unknown chart")

// VOC chart kinds.
const (
	KindLine = "line"
	KindArea = "area"
)

func pageOpts(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "420px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	}
}

// RenderVOC writes the VOC chart for r as a standalone HTML page. kind is
// KindLine or KindArea; anything else is ErrUnknownChart.
func RenderVOC(w io.Writer, r Range, kind string) error {
	if kind != KindLine && kind != KindArea {
		return fmt.Errorf("voc %q: %w", kind, ErrUnknownChart)
	}
	pts := VOCSeries(r)
	x := make([]string, len(pts))
	levels := make([]opts.LineData, len(pts))
	limit := make([]opts.LineData, len(pts))
	for i, p := range pts {
		x[i] = p.Time
		levels[i] = opts.LineData{Value: p.VOC}
		limit[i] = opts.LineData{Value: p.Threshold}
	}
	t := VOCTrend(r)

	line := charts.NewLine()
	line.SetGlobalOptions(pageOpts("VOC Levels",
		fmt.Sprintf("%s range, trend %s %s%%", ParseRange(string(r)), t.Direction, t.Percent))...)
	line.SetXAxis(x)

	series := []charts.SeriesOpts{charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)})}
	if kind == KindArea {
		series = append(series, charts.WithAreaStyleOpts(opts.AreaStyle{}))
	}
	line.AddSeries("VOC Level (PPM)", levels, series...)
	line.AddSeries("Threshold", limit, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ef4444"}))
	return line.Render(w)
}

// RenderPerformance writes the daily chart for one metric: efficiency as a
// line, fuel and missions as bars.
func RenderPerformance(w io.Writer, metric string) error {
	values, ok := MetricValues(metric)
	if !ok {
		return fmt.Errorf("metric %q: %w", metric, ErrUnknownChart)
	}
	days := make([]string, len(efficiencyData))
	for i, d := range efficiencyData {
		days[i] = d.Day
	}

	if metric == MetricEfficiency {
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			data[i] = opts.LineData{Value: v}
		}
		line := charts.NewLine()
		line.SetGlobalOptions(pageOpts("Fleet Efficiency", "percent by day")...)
		line.SetXAxis(days)
		line.AddSeries("Efficiency %", data, charts.WithItemStyleOpts(opts.ItemStyle{Color: "#3b82f6"}))
		return line.Render(w)
	}

	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}
	name, color := "Fuel Usage", "#f59e0b"
	if metric == MetricMissions {
		name, color = "Missions", "#10b981"
	}
	bar := charts.NewBar()
	bar.SetGlobalOptions(pageOpts(name, "by day")...)
	bar.SetXAxis(days)
	bar.AddSeries(name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: color}))
	return bar.Render(w)
}

// RenderMissions writes the mission outcome pie.
func RenderMissions(w io.Writer) error {
	slices := MissionOutcomes()
	data := make([]opts.PieData, len(slices))
	for i, s := range slices {
		data[i] = opts.PieData{Name: s.Name, Value: s.Value, ItemStyle: &opts.ItemStyle{Color: s.Color}}
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(pageOpts("Mission Outcomes", "percent of missions")...)
	pie.AddSeries("Missions", data)
	return pie.Render(w)
}

// Render dispatches by page name: "voc", "voc-area", "missions", or a
// performance metric name.
func Render(w io.Writer, name string, r Range) error {
	switch name {
	case "voc":
		return RenderVOC(w, r, KindLine)
	case "voc-area":
		return RenderVOC(w, r, KindArea)
	case "missions":
		return RenderMissions(w)
	default:
		return RenderPerformance(w, name)
	}
}
