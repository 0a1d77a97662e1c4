// Package backend provides the public factory for Fleet backends while
// keeping their implementations internal.
package backend

import (
	"fmt"

	"github.com/mesh-intelligence/fleetops/internal/memdb"
	"github.com/mesh-intelligence/fleetops/internal/sqlite"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// New creates a detached backend for the given name (types.BackendMemDB or
// types.BackendSQLite). Returns ErrBackendUnknown for other names.
//
// Example:
//
//	f, err := backend.New(types.BackendMemDB)
//	if err != nil { ... }
//	err = f.Attach(types.Config{Backend: types.BackendMemDB, Seed: true})
//	defer f.Detach()
func New(name string) (types.Fleet, error) {
	switch name {
	case types.BackendMemDB:
		return memdb.NewBackend(), nil
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%q: %w", name, types.ErrBackendUnknown)
	}
}

// Open creates and attaches a backend in one step.
func Open(config types.Config) (types.Fleet, error) {
	f, err := New(config.Backend)
	if err != nil {
		return nil, err
	}
	if err := f.Attach(config); err != nil {
		return nil, err
	}
	return f, nil
}
