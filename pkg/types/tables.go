package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Standard table names for Fleet.GetTable, one per dashboard view.
const (
	TableDrones        = "drones"
	TableAlerts        = "alerts"
	TableReports       = "reports"
	TableMaintenance   = "maintenance"
	TableMissions      = "missions"
	TableUsers         = "users"
	TableNotifications = "notifications"
)

// StandardTableNames lists all standard table names in seeding order.
var StandardTableNames = []string{
	TableDrones,
	TableAlerts,
	TableReports,
	TableMaintenance,
	TableMissions,
	TableUsers,
	TableNotifications,
}

// idFormat describes a table's display identifier: a fixed prefix followed
// by a zero-padded sequential index. Width 0 means no padding.
type idFormat struct {
	prefix string
	width  int
}

var idFormats = map[string]idFormat{
	TableDrones:        {prefix: "DR-", width: 3},
	TableAlerts:        {},
	TableReports:       {prefix: "RPT-", width: 3},
	TableMaintenance:   {prefix: "M", width: 3},
	TableMissions:      {prefix: "TSK-", width: 3},
	TableUsers:         {},
	TableNotifications: {},
}

// IsStandardTable reports whether name is one of StandardTableNames.
func IsStandardTable(name string) bool {
	_, ok := idFormats[name]
	return ok
}

// FormatID renders the display ID for index n in the given table,
// e.g. FormatID(TableDrones, 6) == "DR-006".
func FormatID(table string, n int) string {
	f := idFormats[table]
	return fmt.Sprintf("%s%0*d", f.prefix, f.width, n)
}

// ParseIndex extracts the sequential index from a display ID.
// Returns false when id does not follow the table's format.
func ParseIndex(table, id string) (int, bool) {
	f, ok := idFormats[table]
	if !ok || !strings.HasPrefix(id, f.prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, f.prefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextID returns the display ID following the highest index among ids.
// IDs that do not parse are ignored, so an empty table yields index 1.
func NextID(table string, ids []string) string {
	highest := 0
	for _, id := range ids {
		if n, ok := ParseIndex(table, id); ok && n > highest {
			highest = n
		}
	}
	return FormatID(table, highest+1)
}
