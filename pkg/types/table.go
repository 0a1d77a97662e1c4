package types

import "errors"

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete entity
// pointer (*Drone, *Alert, ...).
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or replaces an entity. When both id and the entity's own
	// ID are empty, the next sequential display ID is generated and the
	// entity is appended. Replacing keeps the entity's position.
	// Returns the ID used.
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter in insertion order.
	// The "search" key holds free text; every other key is an enum field
	// compared for equality. An empty filter returns every entity.
	Fetch(filter map[string]any) ([]any, error)
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter")
)

// Entity method errors.
var (
	ErrInvalidStatus = errors.New("invalid status value")
	ErrInvalidValue  = errors.New("value not in allowed set")
	ErrInvalidName   = errors.New("invalid name")
	ErrMissingField  = errors.New("required field missing")
)
