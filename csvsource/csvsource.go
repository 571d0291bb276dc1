// Package csvsource reads observation-window CSV exports into boundary tables.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/andareed/siftly-obsmap/logging"
)

// ErrEmpty is returned for input without even a header line.
var ErrEmpty = errors.New("csv has no header")

// Load opens path and reads it as a CSV table.
func Load(path string) (*boundary.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Infof("csvsource: loaded %d records with %d columns from %s", len(t.Records), len(t.Header), path)
	return t, nil
}

// Read parses CSV from r. Rows may have fewer or more fields than the header.
func Read(r io.Reader) (*boundary.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return boundary.NewTable(records[0], records[1:]), nil
}
