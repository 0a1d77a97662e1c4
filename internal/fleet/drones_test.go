package fleet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fleetops/internal/notify"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

func TestDroneCRUD(t *testing.T) {
	svc, feed, obs := newTestService(t)

	d := types.NewDrone()
	d.Name = "Kite Zeta"
	d.Location = "Sector E-1"
	out, err := svc.AddDrone(d)
	require.NoError(t, err)
	assert.Equal(t, "DR-006", out.Item.ID)
	assert.Equal(t, "Just added", out.Item.LastSeen)
	assert.Equal(t, "Drone Added", out.Notice.Title)
	assert.Equal(t, "Kite Zeta has been added to the fleet.", out.Notice.Description)

	edit, err := svc.GetDrone("DR-002")
	require.NoError(t, err)
	edit.Battery = 99
	out, err = svc.UpdateDrone("DR-002", edit)
	require.NoError(t, err)
	assert.Equal(t, "Just updated", out.Item.LastSeen)

	others, err := svc.GetDrone("DR-003")
	require.NoError(t, err)
	assert.Equal(t, 92, others.Battery, "edit touches only its record")

	n, err := svc.DeleteDrone("DR-001")
	require.NoError(t, err)
	assert.Equal(t, notify.VariantDestructive, n.Variant)
	assert.Equal(t, "Falcon Alpha has been removed from the fleet.", n.Description)

	list, err := svc.ListDrones(nil)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "DR-002", list[0].ID)
	assert.Equal(t, "DR-006", list[4].ID)

	_, err = svc.DeleteDrone("DR-001")
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.Equal(t, 3, feed.Len())
	assert.Equal(t, []string{"drones/add", "drones/update", "drones/delete"}, obs.calls)
}

func TestDroneAddRejectsInvalid(t *testing.T) {
	svc, feed, _ := newTestService(t)

	_, err := svc.AddDrone(&types.Drone{Status: types.DroneStatusActive})
	assert.ErrorIs(t, err, types.ErrInvalidName)

	d := types.NewDrone()
	d.Name = "Overcharged"
	d.Battery = 140
	_, err = svc.AddDrone(d)
	assert.ErrorIs(t, err, types.ErrInvalidData)
	assert.Zero(t, feed.Len())
}

func TestDroneActions(t *testing.T) {
	tests := []struct {
		name        string
		act         func(*Service, string) (Outcome[*types.Drone], error)
		wantStatus  string
		wantMission string
		wantTitle   string
		wantVariant notify.Variant
	}{
		{
			name:        "return to base",
			act:         (*Service).ReturnDrone,
			wantStatus:  types.DroneStatusReturning,
			wantMission: "Return to Base",
			wantTitle:   "Return Command Sent",
			wantVariant: notify.VariantDefault,
		},
		{
			name:        "emergency land",
			act:         (*Service).EmergencyLand,
			wantStatus:  types.DroneStatusEmergencyLanding,
			wantMission: "Emergency Landing",
			wantTitle:   "Emergency Landing",
			wantVariant: notify.VariantDestructive,
		},
		{
			name:        "start mission",
			act:         (*Service).StartDroneMission,
			wantStatus:  types.DroneStatusActive,
			wantMission: "New Mission",
			wantTitle:   "Mission Started",
			wantVariant: notify.VariantDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)

			out, err := tt.act(svc, "DR-004")
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, out.Notice.Title)
			assert.Equal(t, tt.wantVariant, out.Notice.Variant)

			stored, err := svc.GetDrone("DR-004")
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Status)
			assert.Equal(t, tt.wantMission, stored.Mission)
			assert.Equal(t, "Just now", stored.LastSeen)

			_, err = tt.act(svc, "DR-999")
			assert.ErrorIs(t, err, types.ErrNotFound)
		})
	}
}

func TestEmergencyLandStopsDrone(t *testing.T) {
	svc, _, _ := newTestService(t)
	out, err := svc.EmergencyLand("DR-003")
	require.NoError(t, err)
	assert.Equal(t, "0 mph", out.Item.Speed)
	assert.Equal(t, "DR-003 executing emergency landing protocol", out.Notice.Description)
}

func TestListDronesFilter(t *testing.T) {
	svc, _, _ := newTestService(t)

	active, err := svc.ListDrones(map[string]any{"status": types.DroneStatusActive})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Falcon Alpha", active[0].Name)
	assert.Equal(t, "Hawk Gamma", active[1].Name)

	none, err := svc.ListDrones(map[string]any{"search": "blimp"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
