// Shared helpers for fleetops CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/fleetops/internal/filter"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// validTableNamesStr is a comma-separated list of valid table names for error output.
var validTableNamesStr = strings.Join(types.StandardTableNames, ", ")

// parseFilterArgs turns key=value arguments into a filter map. Multiple
// filters are ANDed; "search" is the free-text query.
func parseFilterArgs(args []string) (map[string]any, error) {
	out := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q (expected key=value)", arg)
		}
		out[key] = value
	}
	return out, nil
}

// withSearch adds a non-empty --search value to f.
func withSearch(f map[string]any, search string) map[string]any {
	if search != "" {
		f[filter.SearchKey] = search
	}
	return f
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// writeTable prints header and rows as aligned columns.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// columns returns the table header and one row renderer per table.
func columns(table string) ([]string, func(types.Entity) []string) {
	switch table {
	case types.TableDrones:
		return []string{"ID", "NAME", "STATUS", "BATTERY", "LOCATION", "MISSION"}, func(e types.Entity) []string {
			d := e.(*types.Drone)
			return []string{d.ID, d.Name, d.Status, fmt.Sprintf("%d%%", d.Battery), d.Location, d.Mission}
		}
	case types.TableAlerts:
		return []string{"ID", "TYPE", "STATUS", "TIME", "MESSAGE"}, func(e types.Entity) []string {
			a := e.(*types.Alert)
			return []string{a.ID, a.Type, a.Status, a.Time, a.Message}
		}
	case types.TableReports:
		return []string{"ID", "DATE", "TYPE", "SEVERITY", "STATUS", "LOCATION"}, func(e types.Entity) []string {
			r := e.(*types.Report)
			return []string{r.ID, r.Date, r.Type, r.Severity, r.Status, r.Location}
		}
	case types.TableMaintenance:
		return []string{"ID", "DRONE", "TYPE", "DUE", "PRIORITY", "STATUS", "PROGRESS"}, func(e types.Entity) []string {
			m := e.(*types.MaintenanceTask)
			return []string{m.ID, m.Drone, m.Type, m.DueDate, m.Priority, m.Status, fmt.Sprintf("%d%%", m.Progress)}
		}
	case types.TableMissions:
		return []string{"ID", "NAME", "TYPE", "DRONE", "PRIORITY", "STATUS"}, func(e types.Entity) []string {
			t := e.(*types.MissionTask)
			return []string{t.ID, t.Name, t.Type, t.Drone, t.Priority, t.Status}
		}
	case types.TableUsers:
		return []string{"ID", "NAME", "EMAIL", "ROLE", "STATUS"}, func(e types.Entity) []string {
			u := e.(*types.User)
			return []string{u.ID, u.Name, u.Email, u.Role, u.Status}
		}
	default:
		return []string{"ID", "TYPE", "READ", "TITLE"}, func(e types.Entity) []string {
			n := e.(*types.Notification)
			return []string{n.ID, n.Type, strconv.FormatBool(n.Read), n.Title}
		}
	}
}
