package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fleetops/pkg/types"
)

func TestCreateReport(t *testing.T) {
	svc, _, _ := newTestService(t)

	r := types.NewReport()
	r.Drone = "DR-003"
	r.Location = "Tank C-1"
	r.Status = types.ReportStatusResolved
	out, err := svc.CreateReport(r)
	require.NoError(t, err)

	assert.Equal(t, "RPT-006", out.Item.ID)
	assert.Equal(t, "2024-01-16", out.Item.Date)
	assert.Equal(t, types.ReportStatusPending, out.Item.Status, "new reports start pending")
	assert.GreaterOrEqual(t, out.Item.Images, 1)
	assert.LessOrEqual(t, out.Item.Images, 5)
	assert.Equal(t, "Inspection report RPT-006 has been created.", out.Notice.Description)
}

func TestUpdateReportStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	out, err := svc.UpdateReportStatus("RPT-002", types.ReportStatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, "Report RPT-002 status changed to Reviewed", out.Notice.Description)

	_, err = svc.UpdateReportStatus("RPT-002", "Archived")
	assert.ErrorIs(t, err, types.ErrInvalidStatus)

	r, err := svc.GetReport("RPT-002")
	require.NoError(t, err)
	assert.Equal(t, types.ReportStatusReviewed, r.Status)
}

func TestListReportsBySeverity(t *testing.T) {
	svc, _, _ := newTestService(t)

	medium, err := svc.ListReports(map[string]any{"severity": types.LevelMedium})
	require.NoError(t, err)
	require.Len(t, medium, 2)
	assert.Equal(t, "RPT-002", medium[0].ID)
	assert.Equal(t, "RPT-005", medium[1].ID)

	_, err = svc.ListReports(map[string]any{"inspector": "Lisa Chen"})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestScheduleFollowUp(t *testing.T) {
	svc, feed, obs := newTestService(t)

	n, err := svc.ScheduleFollowUp("RPT-003")
	require.NoError(t, err)
	assert.Equal(t, "Follow-up inspection scheduled for RPT-003", n.Description)
	assert.Equal(t, 1, feed.Len())
	assert.Empty(t, obs.calls, "follow-up stores nothing")

	_, err = svc.ScheduleFollowUp("RPT-404")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
