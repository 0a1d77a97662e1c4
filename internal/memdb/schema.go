package memdb

import (
	gomemdb "github.com/hashicorp/go-memdb"
)

const (
	recordsTable = "records"

	indexID    = "id"    // Table + ID, unique.
	indexTable = "table" // Table only.
)

// record is one stored entity. Data is the JSON encoding so that callers
// never share memory with the store.
type record struct {
	Table string
	ID    string
	Seq   uint64 // Insertion order within the backend.
	Data  []byte
}

func schema() *gomemdb.DBSchema {
	return &gomemdb.DBSchema{
		Tables: map[string]*gomemdb.TableSchema{
			recordsTable: {
				Name: recordsTable,
				Indexes: map[string]*gomemdb.IndexSchema{
					indexID: {
						Name:   indexID,
						Unique: true,
						Indexer: &gomemdb.CompoundIndex{
							Indexes: []gomemdb.Indexer{
								&gomemdb.StringFieldIndex{Field: "Table"},
								&gomemdb.StringFieldIndex{Field: "ID"},
							},
						},
					},
					indexTable: {
						Name:    indexTable,
						Indexer: &gomemdb.StringFieldIndex{Field: "Table"},
					},
				},
			},
		},
	}
}
