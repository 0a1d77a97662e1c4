package fleet

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// Stats are the overview tiles on the dashboard landing page.
type Stats struct {
	TotalDrones     int     `json:"totalDrones"`
	ActiveDrones    int     `json:"activeDrones"`
	AverageBattery  int     `json:"averageBattery"`
	FlightHours     float64 `json:"flightHours"`
	ActiveAlerts    int     `json:"activeAlerts"`
	CriticalAlerts  int     `json:"criticalAlerts"`
	PendingReports  int     `json:"pendingReports"`
	OpenMaintenance int     `json:"openMaintenance"`
	UnreadNotices   int     `json:"unreadNotifications"`
}

// DashboardStats computes the overview tiles from the current collections.
func (s *Service) DashboardStats() (Stats, error) {
	var st Stats

	drones, err := s.ListDrones(nil)
	if err != nil {
		return st, err
	}
	st.TotalDrones = len(drones)
	battery := 0
	for _, d := range drones {
		if d.Status == types.DroneStatusActive {
			st.ActiveDrones++
		}
		battery += d.Battery
		st.FlightHours += parseFlightTime(d.FlightTime)
	}
	if len(drones) > 0 {
		st.AverageBattery = battery / len(drones)
	}

	alerts, err := s.ListAlerts(map[string]any{"status": types.AlertStatusActive})
	if err != nil {
		return st, err
	}
	st.ActiveAlerts = len(alerts)
	for _, a := range alerts {
		if a.Type == types.AlertTypeCritical {
			st.CriticalAlerts++
		}
	}

	pending, err := s.ListReports(map[string]any{"status": types.ReportStatusPending})
	if err != nil {
		return st, err
	}
	st.PendingReports = len(pending)

	counts, err := s.CountMaintenance()
	if err != nil {
		return st, err
	}
	st.OpenMaintenance = counts.Scheduled + counts.InProgress + counts.Overdue

	if st.UnreadNotices, err = s.UnreadCount(); err != nil {
		return st, err
	}
	return st, nil
}

// parseFlightTime reads "2h 15m" as hours. Unparseable input counts as 0.
func parseFlightTime(v string) float64 {
	var h, m int
	if _, err := fmt.Sscanf(strings.TrimSpace(v), "%dh %dm", &h, &m); err != nil {
		return 0
	}
	return float64(h) + float64(m)/60
}

// Hit kinds returned by Search.
const (
	HitDrone    = "drone"
	HitReport   = "report"
	HitLocation = "location"
)

// Hit is one global search result.
type Hit struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Search matches q against drones, reports and the locations they name.
// Drones come first, then reports, then distinct locations, each in
// collection order. An empty query returns nothing.
func (s *Service) Search(q string) ([]Hit, error) {
	hits := []Hit{}
	q = strings.TrimSpace(q)
	if q == "" {
		return hits, nil
	}
	needle := strings.ToLower(q)

	drones, err := s.ListDrones(map[string]any{"search": q})
	if err != nil {
		return nil, err
	}
	for _, d := range drones {
		hits = append(hits, Hit{Kind: HitDrone, ID: d.ID, Label: d.Name})
	}

	reports, err := s.ListReports(map[string]any{"search": q})
	if err != nil {
		return nil, err
	}
	for _, r := range reports {
		hits = append(hits, Hit{Kind: HitReport, ID: r.ID, Label: r.Type + " at " + r.Location})
	}

	allDrones, err := s.ListDrones(nil)
	if err != nil {
		return nil, err
	}
	allReports, err := s.ListReports(nil)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	addLocation := func(loc string) {
		if loc == "" || seen[loc] || !strings.Contains(strings.ToLower(loc), needle) {
			return
		}
		seen[loc] = true
		hits = append(hits, Hit{Kind: HitLocation, ID: loc, Label: loc})
	}
	for _, d := range allDrones {
		addLocation(d.Location)
	}
	for _, r := range allReports {
		addLocation(r.Location)
	}
	return hits, nil
}
