package memdb

import (
	"fmt"
	"sort"

	gomemdb "github.com/hashicorp/go-memdb"

	"github.com/mesh-intelligence/fleetops/internal/filter"
	"github.com/mesh-intelligence/fleetops/pkg/types"
)

// table implements types.Table for one collection.
type table struct {
	name    string
	backend *Backend
}

// Get returns a fresh copy of the entity with the given ID.
// Returns ErrInvalidID for an empty id, ErrNotFound if absent.
func (t *table) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	db, err := t.db()
	if err != nil {
		return nil, err
	}
	txn := db.Txn(false)
	defer txn.Abort()

	rec, err := first(txn, t.name, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, types.ErrNotFound
	}
	return types.DecodeEntity(t.name, rec.Data)
}

// Set validates data and stores it under id. When id and the entity ID are
// both empty the next display ID is generated and written back into data.
// Replacing keeps the record's position.
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
	db, err := t.db()
	if err != nil {
		return "", err
	}

	txn := db.Txn(true)
	defer txn.Abort()

	if id == "" {
		ids, err := t.ids(txn)
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
	existing, err := first(txn, t.name, id)
	if err != nil {
		return "", err
	}
	rec := &record{Table: t.name, ID: id, Data: raw}
	if existing != nil {
		rec.Seq = existing.Seq
	} else {
		t.backend.seq++
		rec.Seq = t.backend.seq
	}
	if err := txn.Insert(recordsTable, rec); err != nil {
		return "", fmt.Errorf("storing %s %s: %w", t.name, id, err)
	}
	txn.Commit()
	return id, nil
}

// Delete removes the entity with the given ID.
// Returns ErrInvalidID for an empty id, ErrNotFound if absent.
func (t *table) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	db, err := t.db()
	if err != nil {
		return err
	}
	txn := db.Txn(true)
	defer txn.Abort()

	rec, err := first(txn, t.name, id)
	if err != nil {
		return err
	}
	if rec == nil {
		return types.ErrNotFound
	}
	if err := txn.Delete(recordsTable, rec); err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.name, id, err)
	}
	txn.Commit()
	return nil
}

// Fetch returns the entities matching filter in insertion order.
func (t *table) Fetch(f map[string]any) ([]any, error) {
	db, err := t.db()
	if err != nil {
		return nil, err
	}
	txn := db.Txn(false)
	defer txn.Abort()

	recs, err := t.records(txn)
	if err != nil {
		return nil, err
	}
	items := make([]types.Entity, 0, len(recs))
	for _, rec := range recs {
		e, err := types.DecodeEntity(t.name, rec.Data)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return filter.Select(t.name, items, f)
}

func (t *table) db() (*gomemdb.MemDB, error) {
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrFleetDetached
	}
	return t.backend.db, nil
}

// records returns the table's records sorted by insertion sequence.
func (t *table) records(txn *gomemdb.Txn) ([]*record, error) {
	it, err := txn.Get(recordsTable, indexTable, t.name)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", t.name, err)
	}
	var recs []*record
	for obj := it.Next(); obj != nil; obj = it.Next() {
		recs = append(recs, obj.(*record))
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Seq < recs[j].Seq })
	return recs, nil
}

func (t *table) ids(txn *gomemdb.Txn) ([]string, error) {
	recs, err := t.records(txn)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}
	return ids, nil
}

func first(txn *gomemdb.Txn, table, id string) (*record, error) {
	raw, err := txn.First(recordsTable, indexID, table, id)
	if err != nil {
		return nil, fmt.Errorf("looking up %s %s: %w", table, id, err)
	}
	if raw == nil {
		return nil, nil
	}
	return raw.(*record), nil
}
