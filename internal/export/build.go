package export

import (
	"fmt"

	"github.com/mesh-intelligence/fleetops/internal/charts"
	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// Source supplies the filtered collections. *fleet.Service implements it.
type Source interface {
	ListDrones(filter map[string]any) ([]*types.Drone, error)
	ListUsers(filter map[string]any) ([]*types.User, error)
	ListAlerts(filter map[string]any) ([]*types.Alert, error)
	ListReports(filter map[string]any) ([]*types.Report, error)
	ListMaintenance(filter map[string]any) ([]*types.MaintenanceTask, error)
}

// Build produces the sheet for view from the collection as filtered by
// filter. r only applies to the voc view.
// Returns ErrUnknownView for views without an export.
func Build(src Source, view string, filter map[string]any, r charts.Range) (Sheet, error) {
	switch view {
	case ViewDrones:
		ds, err := src.ListDrones(filter)
		if err != nil {
			return Sheet{}, err
		}
		return Drones(ds), nil
	case ViewUsers:
		us, err := src.ListUsers(filter)
		if err != nil {
			return Sheet{}, err
		}
		return Users(us), nil
	case ViewAlerts:
		as, err := src.ListAlerts(filter)
		if err != nil {
			return Sheet{}, err
		}
		return Alerts(as), nil
	case ViewReports:
		rs, err := src.ListReports(filter)
		if err != nil {
			return Sheet{}, err
		}
		return Reports(rs), nil
	case ViewMaintenance:
		ms, err := src.ListMaintenance(filter)
		if err != nil {
			return Sheet{}, err
		}
		return Maintenance(ms), nil
	case ViewPerformance:
		return Performance(charts.Efficiency()), nil
	case ViewVOC:
		r = charts.ParseRange(string(r))
		return VOC(r, charts.VOCSeries(r)), nil
	default:
		return Sheet{}, fmt.Errorf("%q: %w", view, ErrUnknownView)
	}
}

var noticeDescriptions = map[string]string{
	ViewDrones:      "Drone data has been exported to CSV.",
	ViewUsers:       "User data has been exported to CSV.",
	ViewAlerts:      "Alert data has been exported to CSV.",
	ViewReports:     "Inspection reports have been exported to CSV.",
	ViewMaintenance: "Maintenance report exported",
	ViewPerformance: "Performance metrics have been exported to CSV.",
	ViewVOC:         "VOC data has been exported to CSV.",
}

// Notice is the acknowledgement sent after a successful export of view.
func Notice(view string) notify.Notice {
	desc, ok := noticeDescriptions[view]
	if !ok {
		desc = "Data has been exported to CSV."
	}
	return notify.New("Export Complete", desc)
}
