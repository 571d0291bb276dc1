// Package boundary turns raw observation-window records into a time ordered,
// epoch relative table with one observed/outside flag per window.
//
// Everything here is a pure function of its inputs. Loading the records and
// drawing them are left to the callers.
package boundary

import "strings"

// Well known column names.
const (
	ColumnWindowStart = "window_start"
	ColumnWindowEnd   = "window_end"

	FlagObservedStrict = "is_observed_strict"
	FlagObserved       = "is_observed"
	FlagOutside        = "is_outside_observation"

	ContextTitle = "title"
)

// FlagColumns lists the recognised observation flag columns in preference order.
var FlagColumns = []string{FlagObservedStrict, FlagObserved, FlagOutside}

// ContextColumns lists the recognised window context columns in preference order.
var ContextColumns = []string{"process", ContextTitle, "app", "window_name"}

// CounterColumns are passed through untouched and only shown in the preview.
var CounterColumns = []string{"event_total", "click_count", "key_count", "scroll_count", "move_count"}

// Table is a header plus string records, as read from a CSV file.
// Records may be ragged; a missing cell reads as "".
type Table struct {
	Header  []string
	Records [][]string

	index map[string]int
}

// NewTable builds a Table, cleaning up header names (whitespace and BOM).
func NewTable(header []string, records [][]string) *Table {
	h := make([]string, len(header))
	for i, name := range header {
		h[i] = cleanColumnName(name)
	}
	return &Table{Header: h, Records: records}
}

func cleanColumnName(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.TrimSpace(name)
}

// Index returns the position of column in the header, or -1.
func (t *Table) Index(column string) int {
	if t.index == nil {
		t.index = make(map[string]int, len(t.Header))
		for i, name := range t.Header {
			// first occurrence wins on duplicate headers
			if _, ok := t.index[name]; !ok {
				t.index[name] = i
			}
		}
	}
	if i, ok := t.index[column]; ok {
		return i
	}
	return -1
}

// Has reports whether column is part of the schema.
func (t *Table) Has(column string) bool {
	return t.Index(column) >= 0
}

// DetectFlagColumn returns the first known flag column present in t, or "".
func DetectFlagColumn(t *Table) string {
	for _, c := range FlagColumns {
		if t.Has(c) {
			return c
		}
	}
	return ""
}

// AvailableFlagColumns returns the known flag columns present in t.
func AvailableFlagColumns(t *Table) []string {
	return present(t, FlagColumns)
}

// AvailableContextColumns returns the known context columns present in t.
func AvailableContextColumns(t *Table) []string {
	return present(t, ContextColumns)
}

func present(t *Table, candidates []string) []string {
	var out []string
	for _, c := range candidates {
		if t.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
