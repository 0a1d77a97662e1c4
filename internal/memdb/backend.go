// Package memdb implements the default in-memory Fleet backend on top of
// hashicorp/go-memdb. All state lives in process memory and is lost on
// Detach.
package memdb

import (
	"fmt"
	"sync"

	gomemdb "github.com/hashicorp/go-memdb"

	"github.com/mesh-intelligence/fleetops/internal/seed"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// Backend implements types.Fleet with one memdb table holding every
// collection, keyed by (table, id).
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *gomemdb.MemDB
	seq      uint64 // Guarded by the memdb writer lock.
	tables   map[string]*table
}

// NewBackend creates a detached backend. Call Attach to initialize it.
func NewBackend() *Backend {
	return &Backend{tables: make(map[string]*table)}
}

// GetTable returns the Table for a standard table name.
// Returns ErrFleetDetached if not attached, ErrTableNotFound for unknown names.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrFleetDetached
	}
	t, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return t, nil
}

// Attach builds an empty database and, when config.Seed is set, loads the
// embedded mock collections.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := gomemdb.NewMemDB(schema())
	if err != nil {
		return fmt.Errorf("creating memdb: %w", err)
	}
	b.db = db
	b.seq = 0

	if config.Seed {
		if err := b.seedLocked(); err != nil {
			b.db = nil
			return fmt.Errorf("seeding: %w", err)
		}
	}

	for _, name := range types.StandardTableNames {
		b.tables[name] = &table{name: name, backend: b}
	}
	b.attached = true
	return nil
}

// Detach drops all state. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.db = nil
	b.attached = false
	b.tables = make(map[string]*table)
	return nil
}

func (b *Backend) seedLocked() error {
	data, err := seed.Load()
	if err != nil {
		return err
	}
	txn := b.db.Txn(true)
	defer txn.Abort()
	for _, name := range types.StandardTableNames {
		for _, e := range data[name] {
			raw, err := types.EncodeEntity(e)
			if err != nil {
				return err
			}
			b.seq++
			rec := &record{Table: name, ID: e.EntityID(), Seq: b.seq, Data: raw}
			if err := txn.Insert(recordsTable, rec); err != nil {
				return fmt.Errorf("inserting %s %s: %w", name, rec.ID, err)
			}
		}
	}
	txn.Commit()
	return nil
}
