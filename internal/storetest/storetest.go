// Package storetest is a behaviour suite shared by every types.Fleet
// backend. Backend packages call Run from their own tests.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// Run exercises the Fleet and Table contract against backends built by
// newFleet. Each subtest gets a fresh, detached backend.
func Run(t *testing.T, backend string, newFleet func() types.Fleet) {
	t.Helper()

	attach := func(t *testing.T, seed bool) types.Fleet {
		t.Helper()
		f := newFleet()
		require.NoError(t, f.Attach(types.Config{Backend: backend, Seed: seed}))
		t.Cleanup(func() { _ = f.Detach() })
		return f
	}
	tableOf := func(t *testing.T, f types.Fleet, name string) types.Table {
		t.Helper()
		tbl, err := f.GetTable(name)
		require.NoError(t, err)
		return tbl
	}

	t.Run("lifecycle", func(t *testing.T) {
		f := newFleet()
		_, err := f.GetTable(types.TableDrones)
		assert.ErrorIs(t, err, types.ErrFleetDetached)

		assert.ErrorIs(t, f.Attach(types.Config{}), types.ErrBackendEmpty)
		require.NoError(t, f.Attach(types.Config{Backend: backend}))
		assert.ErrorIs(t, f.Attach(types.Config{Backend: backend}), types.ErrAlreadyAttached)

		_, err = f.GetTable("hangars")
		assert.ErrorIs(t, err, types.ErrTableNotFound)

		tbl := tableOf(t, f, types.TableDrones)
		require.NoError(t, f.Detach())
		require.NoError(t, f.Detach(), "detach is idempotent")

		_, err = f.GetTable(types.TableDrones)
		assert.ErrorIs(t, err, types.ErrFleetDetached)
		_, err = tbl.Fetch(nil)
		assert.ErrorIs(t, err, types.ErrFleetDetached)
	})

	t.Run("seeded collections", func(t *testing.T) {
		f := attach(t, true)
		want := map[string]int{
			types.TableDrones:        5,
			types.TableAlerts:        5,
			types.TableReports:       5,
			types.TableMaintenance:   4,
			types.TableMissions:      3,
			types.TableUsers:         5,
			types.TableNotifications: 4,
		}
		for name, n := range want {
			items, err := tableOf(t, f, name).Fetch(nil)
			require.NoError(t, err, name)
			assert.Len(t, items, n, name)
		}

		items, err := tableOf(t, f, types.TableDrones).Fetch(nil)
		require.NoError(t, err)
		for i, it := range items {
			assert.Equal(t, types.FormatID(types.TableDrones, i+1), it.(*types.Drone).ID)
		}
	})

	t.Run("unseeded is empty", func(t *testing.T) {
		f := attach(t, false)
		items, err := tableOf(t, f, types.TableUsers).Fetch(nil)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("set generates next id and appends", func(t *testing.T) {
		f := attach(t, true)
		tbl := tableOf(t, f, types.TableDrones)

		d := types.NewDrone()
		d.Name = "Kite Zeta"
		id, err := tbl.Set("", d)
		require.NoError(t, err)
		assert.Equal(t, "DR-006", id)
		assert.Equal(t, "DR-006", d.ID)

		items, err := tbl.Fetch(nil)
		require.NoError(t, err)
		require.Len(t, items, 6)
		assert.Equal(t, "DR-006", items[5].(*types.Drone).ID)
	})

	t.Run("ids do not collide after delete", func(t *testing.T) {
		f := attach(t, true)
		tbl := tableOf(t, f, types.TableReports)
		require.NoError(t, tbl.Delete("RPT-002"))

		r := types.NewReport()
		id, err := tbl.Set("", r)
		require.NoError(t, err)
		assert.Equal(t, "RPT-006", id)
	})

	t.Run("replace keeps position and touches one record", func(t *testing.T) {
		f := attach(t, true)
		tbl := tableOf(t, f, types.TableUsers)

		got, err := tbl.Get("3")
		require.NoError(t, err)
		u := got.(*types.User)
		u.Role = types.RoleAdmin
		_, err = tbl.Set(u.ID, u)
		require.NoError(t, err)

		items, err := tbl.Fetch(nil)
		require.NoError(t, err)
		require.Len(t, items, 5)
		assert.Equal(t, "3", items[2].(*types.User).ID)
		assert.Equal(t, types.RoleAdmin, items[2].(*types.User).Role)
		assert.Equal(t, types.RoleOperator, items[1].(*types.User).Role)
	})

	t.Run("get returns a copy", func(t *testing.T) {
		f := attach(t, true)
		tbl := tableOf(t, f, types.TableDrones)

		got, err := tbl.Get("DR-001")
		require.NoError(t, err)
		got.(*types.Drone).Name = "mutated"

		again, err := tbl.Get("DR-001")
		require.NoError(t, err)
		assert.Equal(t, "Falcon Alpha", again.(*types.Drone).Name)
	})

	t.Run("errors", func(t *testing.T) {
		f := attach(t, true)
		tbl := tableOf(t, f, types.TableDrones)

		_, err := tbl.Get("")
		assert.ErrorIs(t, err, types.ErrInvalidID)
		_, err = tbl.Get("DR-999")
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.ErrorIs(t, tbl.Delete("DR-999"), types.ErrNotFound)
		_, err = tbl.Set("", &types.User{Name: "x"})
		assert.ErrorIs(t, err, types.ErrInvalidData)
		_, err = tbl.Set("", &types.Drone{Status: types.DroneStatusActive})
		assert.ErrorIs(t, err, types.ErrInvalidName)

		items, err := tbl.Fetch(nil)
		require.NoError(t, err)
		assert.Len(t, items, 5, "failed writes leave the table untouched")
	})

	t.Run("delete removes exactly one", func(t *testing.T) {
		f := attach(t, true)
		tbl := tableOf(t, f, types.TableAlerts)
		before, err := tbl.Fetch(nil)
		require.NoError(t, err)
		require.NoError(t, tbl.Delete("2"))

		after, err := tbl.Fetch(nil)
		require.NoError(t, err)
		var ids []string
		for _, it := range after {
			ids = append(ids, it.(*types.Alert).ID)
		}
		assert.Equal(t, []string{"1", "3", "4", "5"}, ids)

		want := append(append([]any{}, before[:1]...), before[2:]...)
		if diff := cmp.Diff(want, after); diff != "" {
			t.Errorf("remaining alerts changed (-want +got):\n%s", diff)
		}
	})

	t.Run("fetch filters", func(t *testing.T) {
		f := attach(t, true)
		tbl := tableOf(t, f, types.TableReports)

		items, err := tbl.Fetch(map[string]any{"severity": types.LevelMedium, "search": "pipeline"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "RPT-005", items[0].(*types.Report).ID)

		_, err = tbl.Fetch(map[string]any{"altitude": "0ft"})
		assert.ErrorIs(t, err, types.ErrInvalidFilter)
	})
}
