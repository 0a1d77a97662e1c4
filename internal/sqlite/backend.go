// Package sqlite implements the alternate Fleet backend on an in-memory
// SQLite database (modernc.org/sqlite, no cgo). Entities are stored as JSON
// and filtered in Go, so both backends share one filter engine.
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/fleetops/internal/seed"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// dsn opens a private in-memory database. With a single open connection
// every statement sees the same database.
const dsn = ":memory:"

// Backend implements types.Fleet using SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
	tables   map[string]*table
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{tables: make(map[string]*table)}
}

// GetTable returns a Table interface for the specified table name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrFleetDetached if the backend is not attached.
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

// Attach opens the database, creates the schema and optionally seeds it.
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

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if config.Seed {
		if err := seedDB(db); err != nil {
			db.Close()
			return fmt.Errorf("seeding: %w", err)
		}
	}

	b.db = db
	for _, name := range types.StandardTableNames {
		b.tables[name] = &table{name: name, backend: b}
	}
	b.attached = true
	return nil
}

// Detach closes the SQLite connection, dropping all data.
// After Detach, all operations return ErrFleetDetached. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	b.tables = make(map[string]*table)
	return nil
}

func seedDB(db *sql.DB) error {
	data, err := seed.Load()
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range types.StandardTableNames {
		for _, e := range data[name] {
			raw, err := types.EncodeEntity(e)
			if err != nil {
				return err
			}
			if _, err := tx.Exec(upsertRecord, name, e.EntityID(), string(raw)); err != nil {
				return fmt.Errorf("inserting %s %s: %w", name, e.EntityID(), err)
			}
		}
	}
	return tx.Commit()
}
