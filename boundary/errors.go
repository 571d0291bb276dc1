package boundary

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is matched by every schema error.
var ErrMissingColumn = errors.New("missing column")

// SchemaError reports columns the pipeline needs but the table does not have.
// It is returned before any row is looked at.
type SchemaError struct {
	Missing []string
	// Flag is set when the missing column is the selected observation flag.
	Flag bool
}

func (e *SchemaError) Error() string {
	if e.Flag {
		return fmt.Sprintf("flag column %q not in CSV", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("required columns missing: %s (need %s, %s)",
		strings.Join(e.Missing, ", "), ColumnWindowStart, ColumnWindowEnd)
}

func (e *SchemaError) Unwrap() error { return ErrMissingColumn }

func checkSchema(t *Table, flagColumn string) error {
	var missing []string
	for _, c := range []string{ColumnWindowStart, ColumnWindowEnd} {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	if flagColumn == "" || !t.Has(flagColumn) {
		return &SchemaError{Missing: []string{flagColumn}, Flag: true}
	}
	return nil
}
