package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fleetops/internal/charts"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

func TestDronesSheet(t *testing.T) {
	ds := []*types.Drone{
		{ID: "DR-001", Name: "Falcon Alpha", Location: "Sector A-1", Battery: 85, Status: "Active",
			LastSeen: "2 min ago", Altitude: "150ft", Speed: "25 mph", Mission: "Pipeline Inspection", FlightTime: "2h 15m"},
		{ID: "DR-002", Name: "Eagle, Beta", Battery: 67, Status: "Charging"},
	}
	s := Drones(ds)
	assert.Equal(t, "drone_fleet_data.csv", s.Filename)
	assert.Equal(t, 3, s.Len())

	out, err := s.Bytes()
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Name,Location,Battery,Status,Last Seen,Altitude,Speed,Mission,Flight Time", lines[0])
	assert.Equal(t, "DR-001,Falcon Alpha,Sector A-1,85%,Active,2 min ago,150ft,25 mph,Pipeline Inspection,2h 15m", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], `DR-002,"Eagle, Beta",`), "commas are quoted: %s", lines[2])

	rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "Eagle, Beta", rows[2][1])
}

func TestEmptyCollectionWritesHeaderOnly(t *testing.T) {
	out, err := Users(nil).Bytes()
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Email,Role,Status,Last Login\n", string(out))
}

func TestSheetFilenames(t *testing.T) {
	tests := []struct {
		sheet Sheet
		want  string
		cols  int
	}{
		{Users(nil), "user_data.csv", 6},
		{Alerts(nil), "alerts_data.csv", 5},
		{Reports(nil), "inspection_reports.csv", 10},
		{Maintenance(nil), "maintenance_schedule.csv", 9},
		{Performance(nil), "performance-metrics.csv", 6},
		{VOC(charts.RangeWeekly, nil), "voc-data-weekly.csv", 3},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sheet.Filename)
			assert.Len(t, tt.sheet.Header, tt.cols)
		})
	}
}

func TestReportsSheetColumnOrder(t *testing.T) {
	s := Reports([]*types.Report{{
		ID: "RPT-003", Date: "2024-01-14", Drone: "DR-002", Type: "Leak", Severity: "Critical",
		Location: "Valve Station C", Status: "Action Required", Inspector: "Mike Davis", Priority: "Critical", Images: 5,
	}})
	assert.Equal(t, []string{"RPT-003", "2024-01-14", "DR-002", "Leak", "Critical", "Valve Station C", "Action Required", "Mike Davis", "Critical", "5"}, s.Rows[0])
}

func TestVOCSheet(t *testing.T) {
	s := VOC(charts.RangeHourly, charts.VOCSeries(charts.RangeHourly))
	require.Len(t, s.Rows, 7)
	assert.Equal(t, []string{"00:00", "12", "20"}, s.Rows[0])
}

func TestPerformanceSheet(t *testing.T) {
	s := Performance(charts.Efficiency())
	require.Len(t, s.Rows, 7)
	assert.Equal(t, []string{"Mon", "87", "45", "12", "8.5", "245"}, s.Rows[0])
}
