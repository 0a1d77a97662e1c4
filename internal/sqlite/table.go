package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/fleetops/internal/filter"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// table implements types.Table for a single collection.
type table struct {
	name    string
	backend *Backend
}

// Get retrieves an entity by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrFleetDetached
	}

	var data string
	err := t.backend.db.QueryRow(selectRecord, t.name, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s %s: %w", t.name, id, err)
	}
	return types.DecodeEntity(t.name, []byte(data))
}

// Set creates or replaces an entity. If both id and the entity ID are empty
// the next display ID is generated. Returns the ID used.
func (t *table) Set(id string, data any) (string, error) {
	e, err := types.AsEntity(t.name, data)
	if err != nil {
		return "", err
	}
	if id == "" {
		id = e.EntityID()
	}
	if err := e.Validate(); err != nil {
		return "", err
	}

	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return "", types.ErrFleetDetached
	}

	tx, err := t.backend.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if id == "" {
		ids, err := t.ids(tx)
		if err != nil {
			return "", err
		}
		id = types.NextID(t.name, ids)
	}
	e.SetEntityID(id)

	raw, err := types.EncodeEntity(e)
	if err != nil {
		return "", err
	}
	if _, err := tx.Exec(upsertRecord, t.name, id, string(raw)); err != nil {
		return "", fmt.Errorf("storing %s %s: %w", t.name, id, err)
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes an entity by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return types.ErrFleetDetached
	}

	res, err := t.backend.db.Exec(deleteRecord, t.name, id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.name, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns the entities matching filter in insertion order.
func (t *table) Fetch(f map[string]any) ([]any, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrFleetDetached
	}

	rows, err := t.backend.db.Query(selectRecords, t.name)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.name, err)
	}
	defer rows.Close()

	var items []types.Entity
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		e, err := types.DecodeEntity(t.name, []byte(data))
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return filter.Select(t.name, items, f)
}

func (t *table) ids(tx *sql.Tx) ([]string, error) {
	rows, err := tx.Query(selectIDs, t.name)
	if err != nil {
		return nil, fmt.Errorf("listing %s ids: %w", t.name, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
