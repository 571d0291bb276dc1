package boundary

import "time"

// PreviewLimit is the default number of rows in the data preview.
const PreviewLimit = 200

// PreviewTimeLayout formats timestamps in the preview and exports.
const PreviewTimeLayout = "2006-01-02 15:04:05-07:00"

// Preview is the tabular view of the first normalized rows.
type Preview struct {
	Columns []string
	Rows    [][]string
	// Source holds the input line of each preview row.
	Source []int
}

// PreviewColumns returns the preview column set: both window bounds, the flag
// column and whichever counters the input has.
func (res *Result) PreviewColumns() []string {
	cols := []string{ColumnWindowStart, ColumnWindowEnd, res.FlagColumn}
	for _, c := range CounterColumns {
		if res.HasColumn(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Preview returns up to limit rows (PreviewLimit when limit <= 0) restricted to
// PreviewColumns. Window bounds are shown as parsed UTC timestamps.
func (res *Result) Preview(limit int) Preview {
	if limit <= 0 {
		limit = PreviewLimit
	}
	cols := res.PreviewColumns()
	n := min(limit, len(res.Rows))
	p := Preview{
		Columns: cols,
		Rows:    make([][]string, 0, n),
		Source:  make([]int, 0, n),
	}
	for _, r := range res.Rows[:n] {
		out := make([]string, len(cols))
		for i, c := range cols {
			switch c {
			case ColumnWindowStart:
				out[i] = FormatTimestamp(r.Start)
			case ColumnWindowEnd:
				out[i] = FormatTimestamp(r.End)
			default:
				out[i] = res.Value(r, c)
			}
		}
		p.Rows = append(p.Rows, out)
		p.Source = append(p.Source, r.Source)
	}
	return p
}

// FormatTimestamp renders t in UTC using PreviewTimeLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(PreviewTimeLayout)
}
