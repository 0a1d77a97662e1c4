package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/fleetops/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr error
	}{
		{"memdb", types.BackendMemDB, nil},
		{"sqlite", types.BackendSQLite, nil},
		{"empty", "", types.ErrBackendEmpty},
		{"unknown", "dolt", types.ErrBackendUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.backend)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}
}

func TestOpen(t *testing.T) {
	for _, name := range []string{types.BackendMemDB, types.BackendSQLite} {
		t.Run(name, func(t *testing.T) {
			f, err := Open(types.Config{Backend: name, Seed: true})
			require.NoError(t, err)
			defer f.Detach()

			tbl, err := f.GetTable(types.TableDrones)
			require.NoError(t, err)
			items, err := tbl.Fetch(map[string]any{"status": types.DroneStatusActive})
			require.NoError(t, err)
			assert.Len(t, items, 2)
		})
	}
}
