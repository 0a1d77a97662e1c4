// Package export turns view collections into CSV sheets with a fixed
// column order and a fixed download filename per view.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mesh-intelligence/fleetops/internal/charts"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// ErrUnknownView is returned for view names without an export.
var ErrUnknownView = errors.New("unknown export view")

// Exportable views.
const (
	ViewDrones      = "drones"
	ViewUsers       = "users"
	ViewAlerts      = "alerts"
	ViewReports     = "reports"
	ViewMaintenance = "maintenance"
	ViewPerformance = "performance"
	ViewVOC         = "voc"
)

// Views lists every exportable view.
var Views = []string{ViewDrones, ViewUsers, ViewAlerts, ViewReports, ViewMaintenance, ViewPerformance, ViewVOC}

// Sheet is a header row plus data rows destined for one file.
type Sheet struct {
	Filename string
	Header   []string
	Rows     [][]string
}

// Len returns the number of lines the sheet writes, header included.
func (s Sheet) Len() int { return len(s.Rows) + 1 }

// Write emits the sheet as CSV. Fields holding commas, quotes or newlines
// are quoted.
func (s Sheet) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return fmt.Errorf("writing %s header: %w", s.Filename, err)
	}
	if err := cw.WriteAll(s.Rows); err != nil {
		return fmt.Errorf("writing %s rows: %w", s.Filename, err)
	}
	return nil
}

// Bytes renders the sheet in memory.
func (s Sheet) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func itoa(n int) string { return strconv.Itoa(n) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// Drones builds drone_fleet_data.csv.
func Drones(ds []*types.Drone) Sheet {
	s := Sheet{
		Filename: "drone_fleet_data.csv",
		Header:   []string{"ID", "Name", "Location", "Battery", "Status", "Last Seen", "Altitude", "Speed", "Mission", "Flight Time"},
	}
	for _, d := range ds {
		s.Rows = append(s.Rows, []string{
			d.ID, d.Name, d.Location, itoa(d.Battery) + "%", d.Status,
			d.LastSeen, d.Altitude, d.Speed, d.Mission, d.FlightTime,
		})
	}
	return s
}

// Users builds user_data.csv.
func Users(us []*types.User) Sheet {
	s := Sheet{
		Filename: "user_data.csv",
		Header:   []string{"ID", "Name", "Email", "Role", "Status", "Last Login"},
	}
	for _, u := range us {
		s.Rows = append(s.Rows, []string{u.ID, u.Name, u.Email, u.Role, u.Status, u.LastLogin})
	}
	return s
}

// Alerts builds alerts_data.csv.
func Alerts(as []*types.Alert) Sheet {
	s := Sheet{
		Filename: "alerts_data.csv",
		Header:   []string{"ID", "Type", "Message", "Status", "Time"},
	}
	for _, a := range as {
		s.Rows = append(s.Rows, []string{a.ID, a.Type, a.Message, a.Status, a.Time})
	}
	return s
}

// Reports builds inspection_reports.csv.
func Reports(rs []*types.Report) Sheet {
	s := Sheet{
		Filename: "inspection_reports.csv",
		Header:   []string{"Report ID", "Date", "Drone", "Issue Type", "Severity", "Location", "Status", "Inspector", "Priority", "Images"},
	}
	for _, r := range rs {
		s.Rows = append(s.Rows, []string{
			r.ID, r.Date, r.Drone, r.Type, r.Severity, r.Location,
			r.Status, r.Inspector, r.Priority, itoa(r.Images),
		})
	}
	return s
}

// Maintenance builds maintenance_schedule.csv.
func Maintenance(ms []*types.MaintenanceTask) Sheet {
	s := Sheet{
		Filename: "maintenance_schedule.csv",
		Header:   []string{"ID", "Drone", "Type", "Due Date", "Priority", "Status", "Progress", "Assigned To", "Estimated Hours"},
	}
	for _, m := range ms {
		s.Rows = append(s.Rows, []string{
			m.ID, m.Drone, m.Type, m.DueDate, m.Priority, m.Status,
			itoa(m.Progress) + "%", m.AssignedTo, itoa(m.EstimatedHours),
		})
	}
	return s
}

// Performance builds performance-metrics.csv from the weekly series.
func Performance(days []charts.DayMetrics) Sheet {
	s := Sheet{
		Filename: "performance-metrics.csv",
		Header:   []string{"Day", "Efficiency %", "Fuel Usage", "Missions", "Flight Time", "Distance"},
	}
	for _, d := range days {
		s.Rows = append(s.Rows, []string{
			d.Day, itoa(d.Efficiency), itoa(d.Fuel), itoa(d.Missions), ftoa(d.FlightTime), itoa(d.Distance),
		})
	}
	return s
}

// VOC builds voc-data-{range}.csv.
func VOC(r charts.Range, pts []charts.Point) Sheet {
	s := Sheet{
		Filename: fmt.Sprintf("voc-data-%s.csv", r),
		Header:   []string{"Time", "VOC Level (PPM)", "Threshold"},
	}
	for _, p := range pts {
		s.Rows = append(s.Rows, []string{p.Time, ftoa(p.VOC), ftoa(p.Threshold)})
	}
	return s
}
