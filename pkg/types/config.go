package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Config selects the store behind a Fleet.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	// Seed loads the embedded mock collections on Attach. Without it every
	// table starts empty.
	Seed bool `json:"seed" yaml:"seed"`
}

// Backend names. Both keep their data in process memory.
const (
	BackendMemDB  = "memdb"
	BackendSQLite = "sqlite"
)

var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Backends lists the accepted backend names, default first.
var Backends = []string{BackendMemDB, BackendSQLite}

// BackendList renders Backends for help and error text ("memdb or sqlite").
func BackendList() string {
	return strings.Join(Backends, " or ")
}

// Validate reports ErrBackendEmpty or ErrBackendUnknown. Names are
// case sensitive.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !slices.Contains(Backends, c.Backend) {
		return fmt.Errorf("%q, want %s: %w", c.Backend, BackendList(), ErrBackendUnknown)
	}
	return nil
}
