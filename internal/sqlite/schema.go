package sqlite

// Schema DDL. Every collection shares one table keyed by (tbl, id); seq
// records insertion order and data holds the entity JSON.
const (
	createRecords = `CREATE TABLE IF NOT EXISTS records (
    tbl TEXT NOT NULL,
    id TEXT NOT NULL,
    seq INTEGER NOT NULL,
    data TEXT NOT NULL,
    PRIMARY KEY (tbl, id)
);`

	createSeqIndex = `CREATE INDEX IF NOT EXISTS idx_records_seq ON records (tbl, seq);`
)

var schemaStatements = []string{createRecords, createSeqIndex}

const (
	selectRecord  = `SELECT data FROM records WHERE tbl = ? AND id = ?`
	selectRecords = `SELECT data FROM records WHERE tbl = ? ORDER BY seq`
	selectIDs     = `SELECT id FROM records WHERE tbl = ?`
	deleteRecord  = `DELETE FROM records WHERE tbl = ? AND id = ?`

	// Replacing a record keeps its seq and therefore its position.
	upsertRecord = `INSERT INTO records (tbl, id, seq, data)
VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM records), ?)
ON CONFLICT (tbl, id) DO UPDATE SET data = excluded.data`
)
