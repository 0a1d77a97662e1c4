package types

import "errors"

// Fleet defines the interface for backend-agnostic access to the dashboard
// collections. Callers attach to a backend, access tables by name, and
// detach when done.
type Fleet interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach initializes the backend described by config and, when
	// config.Seed is set, loads the mock collections. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, GetTable returns ErrFleetDetached.
	Detach() error
}

// Fleet lifecycle errors.
var (
	ErrFleetDetached   = errors.New("fleet is detached")
	ErrAlreadyAttached = errors.New("fleet is already attached")
	ErrTableNotFound   = errors.New("table not found")
)
