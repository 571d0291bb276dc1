package boundary

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Row is one surviving observation window after normalization.
type Row struct {
	// Source is the 1-based data line of the record in the input table.
	Source   int
	Start    time.Time
	End      time.Time
	Observed bool

	// Seconds since the dataset epoch.
	OffsetStart float64
	OffsetEnd   float64
	// Duration is OffsetEnd-OffsetStart floored at 0.
	Duration float64

	Record []string
}

// Summary holds the window counts shown next to the tracks.
type Summary struct {
	Total    int `json:"total" yaml:"total"`
	Observed int `json:"observed_count" yaml:"observed_count"`
	Outside  int `json:"outside_count" yaml:"outside_count"`
}

// Result is the output of Normalize.
type Result struct {
	Header     []string
	FlagColumn string
	// Epoch is the earliest surviving window_start; zero when Rows is empty.
	Epoch   time.Time
	Rows    []Row
	Summary Summary
	// Dropped counts records whose timestamps did not parse. It is only a
	// diagnostic, dropping is never an error.
	Dropped int

	index map[string]int
}

// Normalize validates the schema, drops records with unparseable timestamps,
// orders the rest by window_start and derives the observed flag and the
// epoch relative offsets.
func Normalize(t *Table, flagColumn string) (*Result, error) {
	if err := checkSchema(t, flagColumn); err != nil {
		return nil, err
	}

	startIdx := t.Index(ColumnWindowStart)
	endIdx := t.Index(ColumnWindowEnd)
	flagIdx := t.Index(flagColumn)
	invert := flagColumn == FlagOutside

	res := &Result{
		Header:     t.Header,
		FlagColumn: flagColumn,
		Rows:       make([]Row, 0, len(t.Records)),
	}

	for i, rec := range t.Records {
		start, ok := ParseTimestamp(cell(rec, startIdx))
		if !ok {
			res.Dropped++
			continue
		}
		end, ok := ParseTimestamp(cell(rec, endIdx))
		if !ok {
			res.Dropped++
			continue
		}
		observed := ParseBool(cell(rec, flagIdx))
		if invert {
			observed = !observed
		}
		res.Rows = append(res.Rows, Row{
			Source:   i + 1,
			Start:    start,
			End:      end,
			Observed: observed,
			Record:   rec,
		})
	}

	sort.SliceStable(res.Rows, func(a, b int) bool {
		return res.Rows[a].Start.Before(res.Rows[b].Start)
	})

	if len(res.Rows) == 0 {
		return res, nil
	}

	res.Epoch = res.Rows[0].Start
	for i := range res.Rows {
		r := &res.Rows[i]
		r.OffsetStart = r.Start.Sub(res.Epoch).Seconds()
		r.OffsetEnd = r.End.Sub(res.Epoch).Seconds()
		r.Duration = max(0, r.OffsetEnd-r.OffsetStart)
		if r.Observed {
			res.Summary.Observed++
		}
	}
	res.Summary.Total = len(res.Rows)
	res.Summary.Outside = res.Summary.Total - res.Summary.Observed
	return res, nil
}

// Value returns the raw cell of column for row r, "" when absent.
func (res *Result) Value(r Row, column string) string {
	return cell(r.Record, res.columnIndex(column))
}

// HasColumn reports whether column was part of the normalized table's schema.
func (res *Result) HasColumn(column string) bool {
	return res.columnIndex(column) >= 0
}

func (res *Result) columnIndex(column string) int {
	if res.index == nil {
		res.index = make(map[string]int, len(res.Header))
		for i, name := range res.Header {
			if _, ok := res.index[name]; !ok {
				res.index[name] = i
			}
		}
	}
	if i, ok := res.index[column]; ok {
		return i
	}
	return -1
}

// Span is the axis length in seconds needed to show every window.
func (res *Result) Span() float64 {
	span := 0.0
	for _, r := range res.Rows {
		span = max(span, r.OffsetStart+r.Duration)
	}
	return span
}

// Segment is a bar on a track: offset from the epoch and width, both in seconds.
type Segment struct {
	Offset float64
	Width  float64
}

// Segments returns the bars for the observed (true) or outside (false) windows
// in time order.
func (res *Result) Segments(observed bool) []Segment {
	var out []Segment
	for _, r := range res.Rows {
		if r.Observed == observed {
			out = append(out, Segment{Offset: r.OffsetStart, Width: r.Duration})
		}
	}
	return out
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp reads a window boundary as UTC. Values without a zone are
// taken to be UTC already.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, raw)
		if err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

// missingTokens are the cell values read as a missing value.
var missingTokens = map[string]bool{
	"": true, "na": true, "n/a": true, "#n/a": true, "nan": true, "-nan": true,
	"null": true, "none": true, "<na>": true,
}

// IsMissing reports whether a cell holds no value.
func IsMissing(raw string) bool {
	return missingTokens[strings.ToLower(strings.TrimSpace(raw))]
}

// ParseBool coerces a CSV cell to a boolean the way a typed column would:
// true/false words, nonzero numbers, and any other non-empty text is true.
// A missing cell is true, so an empty observed flag counts as observed and an
// empty is_outside_observation flag as not observed.
func ParseBool(raw string) bool {
	if IsMissing(raw) {
		return true
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "true", "t", "yes", "y":
		return true
	case "false", "f", "no", "n":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0
	}
	return true
}
