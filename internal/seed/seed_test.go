package seed

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fleetops/pkg/types"
)

func TestLoad(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)

	want := map[string]int{
		types.TableDrones:        5,
		types.TableAlerts:        5,
		types.TableReports:       5,
		types.TableMaintenance:   4,
		types.TableMissions:      3,
		types.TableUsers:         5,
		types.TableNotifications: 4,
	}
	for table, n := range want {
		assert.Len(t, data[table], n, table)
		for _, e := range data[table] {
			assert.NoError(t, e.Validate(), "%s %s", table, e.EntityID())
		}
	}

	first := data[types.TableDrones][0].(*types.Drone)
	assert.Equal(t, "DR-001", first.ID)
	assert.Equal(t, "Falcon Alpha", first.Name)
	assert.Equal(t, 85, first.Battery)
}

func TestLoadFSSkipsMalformedLines(t *testing.T) {
	fsys := fstest.MapFS{
		"d/users.jsonl": {Data: []byte(
			`{"id":"1","name":"Ann","email":"a@x","role":"Admin","status":"Active"}` + "\n" +
				"{broken\n" +
				"\n" +
				`["not","an","object"]` + "\n" +
				`{"id":"2","name":"Bo","email":"b@x","role":"Viewer","status":"Inactive"}` + "\n",
		)},
	}

	data, err := LoadFS(fsys, "d")
	require.NoError(t, err)
	require.Len(t, data[types.TableUsers], 2)
	assert.Equal(t, "2", data[types.TableUsers][1].EntityID())
	assert.Empty(t, data[types.TableDrones])
}

func TestLoadFSSkipsInvalidRecords(t *testing.T) {
	fsys := fstest.MapFS{
		"d/drones.jsonl": {Data: []byte(
			`{"id":"DR-001","name":"Falcon Alpha","battery":85,"status":"Active"}` + "\n" +
				`{"id":"DR-002","name":"Hawk","battery":40,"status":"Hovering"}` + "\n" +
				`{"id":"DR-003","name":"Osprey","battery":140,"status":"Charging"}` + "\n" +
				`{"id":"DR-004","name":"","battery":10,"status":"Charging"}` + "\n" +
				`{"id":"DR-005","name":"Kite","battery":0,"status":"Low Battery"}` + "\n",
		)},
	}

	data, err := LoadFS(fsys, "d")
	require.NoError(t, err)
	var ids []string
	for _, e := range data[types.TableDrones] {
		ids = append(ids, e.EntityID())
	}
	assert.Equal(t, []string{"DR-001", "DR-005"}, ids)
}

func TestEmbeddedFixturesAllValid(t *testing.T) {
	data, err := Load()
	require.NoError(t, err)
	for table, es := range data {
		for _, e := range es {
			assert.NoError(t, e.Validate(), "%s %s", table, e.EntityID())
		}
	}
}
