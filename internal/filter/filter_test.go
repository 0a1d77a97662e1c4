package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fleetops/pkg/types"
)

func fleet() []*types.Drone {
	return []*types.Drone{
		{ID: "DR-001", Name: "Falcon Alpha", Status: types.DroneStatusActive},
		{ID: "DR-002", Name: "Eagle Beta", Status: types.DroneStatusCharging},
		{ID: "DR-003", Name: "Hawk Gamma", Status: types.DroneStatusActive},
		{ID: "DR-004", Name: "Raven Delta", Status: types.DroneStatusLowBattery},
	}
}

func ids(ds []*types.Drone) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		c    Criteria
		want []string
	}{
		{
			name: "zero criteria keeps everything in order",
			want: []string{"DR-001", "DR-002", "DR-003", "DR-004"},
		},
		{
			name: "search is case insensitive",
			c:    Criteria{Search: "HAWK"},
			want: []string{"DR-003"},
		},
		{
			name: "search matches id field",
			c:    Criteria{Search: "dr-00"},
			want: []string{"DR-001", "DR-002", "DR-003", "DR-004"},
		},
		{
			name: "status equality",
			c:    Criteria{Equals: map[string]string{"status": types.DroneStatusActive}},
			want: []string{"DR-001", "DR-003"},
		},
		{
			name: "all disables predicate",
			c:    Criteria{Equals: map[string]string{"status": All}},
			want: []string{"DR-001", "DR-002", "DR-003", "DR-004"},
		},
		{
			name: "search and status are conjunctive",
			c:    Criteria{Search: "a", Equals: map[string]string{"status": types.DroneStatusCharging}},
			want: []string{"DR-002"},
		},
		{
			name: "enum equality is exact",
			c:    Criteria{Equals: map[string]string{"status": "active"}},
			want: []string{},
		},
		{
			name: "no match yields empty",
			c:    Criteria{Search: "zeppelin"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(fleet(), tt.c)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApplyIsStable(t *testing.T) {
	// Re-applying the same criteria to its own output changes nothing.
	c := Criteria{Search: "a", Equals: map[string]string{"status": types.DroneStatusActive}}
	once := Apply(fleet(), c)
	twice := Apply(once, c)
	assert.Equal(t, ids(once), ids(twice))
}

func TestParseCriteria(t *testing.T) {
	c, err := ParseCriteria(map[string]any{"search": "hawk", "status": "Active"})
	require.NoError(t, err)
	assert.Equal(t, "hawk", c.Search)
	assert.Equal(t, map[string]string{"status": "Active"}, c.Equals)

	_, err = ParseCriteria(map[string]any{"battery": 85})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)

	c, err = ParseCriteria(nil)
	require.NoError(t, err)
	assert.True(t, Matches(&types.Drone{}, c))
}

func TestValidate(t *testing.T) {
	probe := &types.Report{}
	assert.NoError(t, Validate(Criteria{Equals: map[string]string{"severity": "High", "status": "all"}}, probe))
	err := Validate(Criteria{Equals: map[string]string{"colour": "red"}}, probe)
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestSelect(t *testing.T) {
	items := []types.Entity{
		&types.Alert{ID: "1", Type: types.AlertTypeCritical, Status: types.AlertStatusActive, Message: "gas leak"},
		&types.Alert{ID: "2", Type: types.AlertTypeWarning, Status: types.AlertStatusActive, Message: "low battery"},
		&types.Alert{ID: "3", Type: types.AlertTypeCritical, Status: types.AlertStatusResolved, Message: "link lost"},
	}

	got, err := Select(types.TableAlerts, items, map[string]any{"type": "Critical", "status": "all"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[1].(*types.Alert).ID)

	got, err = Select(types.TableAlerts, items, map[string]any{"search": "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = Select(types.TableAlerts, items, map[string]any{"severity": "High"})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestApplyAlertsByStatus(t *testing.T) {
	alerts := []*types.Alert{
		{ID: "1", Type: types.AlertTypeCritical, Message: "Gas leak at Section C", Status: types.AlertStatusActive},
		{ID: "2", Type: types.AlertTypeInfo, Message: "Maintenance completed", Status: types.AlertStatusResolved},
	}

	got := Apply(alerts, Criteria{Equals: map[string]string{"status": types.AlertStatusActive}})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, types.AlertTypeCritical, got[0].Type)
}
