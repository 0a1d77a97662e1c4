// Package seed holds the mock collections loaded into a fleet on Attach.
// Each standard table has one embedded JSONL file, one record per line.
package seed

import (
	"bufio"
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/mesh-intelligence/fleetops/pkg/types"
)

//go:embed data/*.jsonl
var fixtures embed.FS

// Data maps a table name to its seed entities in file order.
type Data map[string][]types.Entity

// Load decodes the embedded fixtures for every standard table.
func Load() (Data, error) {
	return LoadFS(fixtures, "data")
}

// LoadFS decodes <dir>/<table>.jsonl from fsys for every standard table.
// Missing files yield an empty collection. Malformed lines and records
// that fail Validate are skipped.
func LoadFS(fsys fs.FS, dir string) (Data, error) {
	out := make(Data, len(types.StandardTableNames))
	for _, table := range types.StandardTableNames {
		raw, err := fs.ReadFile(fsys, dir+"/"+table+".jsonl")
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				out[table] = nil
				continue
			}
			return nil, fmt.Errorf("reading %s fixtures: %w", table, err)
		}
		records, err := readJSONL(raw)
		if err != nil {
			return nil, fmt.Errorf("scanning %s fixtures: %w", table, err)
		}
		for _, rec := range records {
			e, err := types.DecodeEntity(table, rec)
			if err != nil {
				// Valid JSON of the wrong shape; skip like a malformed line.
				continue
			}
			if e.Validate() != nil {
				continue
			}
			out[table] = append(out[table], e)
		}
	}
	return out, nil
}

// readJSONL returns each non-empty, parseable line as a json.RawMessage.
// Malformed lines are skipped.
func readJSONL(data []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
