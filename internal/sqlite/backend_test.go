package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fleetops/internal/storetest"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

func TestBackend(t *testing.T) {
	storetest.Run(t, types.BackendSQLite, func() types.Fleet { return NewBackend() })
}

func TestBackend_ReattachStartsFresh(t *testing.T) {
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, Seed: true}
	require.NoError(t, b.Attach(config))

	tbl, err := b.GetTable(types.TableAlerts)
	require.NoError(t, err)
	require.NoError(t, tbl.Delete("1"))
	require.NoError(t, b.Detach())

	require.NoError(t, b.Attach(config))
	defer b.Detach()
	tbl, err = b.GetTable(types.TableAlerts)
	require.NoError(t, err)
	_, err = tbl.Get("1")
	assert.NoError(t, err, "state does not survive detach")
}
