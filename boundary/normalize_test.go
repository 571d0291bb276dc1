package boundary

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func windowsTable(flag string, rows ...[]string) *Table {
	return NewTable([]string{ColumnWindowStart, ColumnWindowEnd, flag}, rows)
}

func TestNormalizeScenario(t *testing.T) {
	tbl := windowsTable(FlagObservedStrict,
		[]string{"2026-01-20T10:00:00Z", "2026-01-20T10:00:05Z", "True"},
		[]string{"2026-01-20T10:00:10Z", "2026-01-20T10:00:08Z", "False"},
	)

	res, err := Normalize(tbl, FlagObservedStrict)
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC), res.Epoch)

	r1 := res.Rows[0]
	assert.True(t, r1.Observed)
	assert.Equal(t, 0.0, r1.OffsetStart)
	assert.Equal(t, 5.0, r1.OffsetEnd)
	assert.Equal(t, 5.0, r1.Duration)

	r2 := res.Rows[1]
	assert.False(t, r2.Observed)
	assert.Equal(t, 10.0, r2.OffsetStart)
	assert.Equal(t, 8.0, r2.OffsetEnd)
	assert.Equal(t, 0.0, r2.Duration)

	assert.Equal(t, Summary{Total: 2, Observed: 1, Outside: 1}, res.Summary)
}

func TestNormalizeSortsStable(t *testing.T) {
	tbl := NewTable([]string{ColumnWindowStart, ColumnWindowEnd, FlagObserved, "process"}, [][]string{
		{"2026-01-20 10:00:30", "2026-01-20 10:00:40", "1", "c"},
		{"2026-01-20 10:00:00", "2026-01-20 10:00:10", "0", "a"},
		{"2026-01-20 10:00:30", "2026-01-20 10:00:35", "1", "d"},
		{"2026-01-20 10:00:00", "2026-01-20 10:00:05", "1", "b"},
	})

	res, err := Normalize(tbl, FlagObserved)
	require.NoError(t, err)

	var got []string
	for i, r := range res.Rows {
		got = append(got, res.Value(r, "process"))
		if i > 0 {
			assert.LessOrEqual(t, res.Rows[i-1].OffsetStart, r.OffsetStart)
		}
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
	assert.Equal(t, []int{2, 4, 1, 3}, []int{res.Rows[0].Source, res.Rows[1].Source, res.Rows[2].Source, res.Rows[3].Source})
}

func TestNormalizeOutsideFlagInverts(t *testing.T) {
	rows := [][]string{
		{"2026-01-20T10:00:00Z", "2026-01-20T10:00:01Z", "True"},
		{"2026-01-20T10:00:01Z", "2026-01-20T10:00:02Z", "False"},
	}
	for _, flag := range FlagColumns {
		t.Run(flag, func(t *testing.T) {
			res, err := Normalize(windowsTable(flag, rows...), flag)
			require.NoError(t, err)
			require.Len(t, res.Rows, 2)
			if flag == FlagOutside {
				assert.False(t, res.Rows[0].Observed)
				assert.True(t, res.Rows[1].Observed)
			} else {
				assert.True(t, res.Rows[0].Observed)
				assert.False(t, res.Rows[1].Observed)
			}
			assert.Equal(t, res.Summary.Total, res.Summary.Observed+res.Summary.Outside)
		})
	}
}

func TestNormalizeMissingRequiredColumn(t *testing.T) {
	tbl := NewTable([]string{ColumnWindowStart, FlagObservedStrict}, [][]string{
		{"not a time", "1"},
	})

	res, err := Normalize(tbl, FlagObservedStrict)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrMissingColumn))

	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{ColumnWindowEnd}, se.Missing)
	assert.False(t, se.Flag)
}

func TestNormalizeMissingFlagColumn(t *testing.T) {
	tbl := windowsTable(FlagObserved)

	_, err := Normalize(tbl, FlagObservedStrict)
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.True(t, se.Flag)
	assert.Contains(t, err.Error(), FlagObservedStrict)
}

func TestNormalizeDropsUnparseableRows(t *testing.T) {
	tbl := windowsTable(FlagObservedStrict,
		[]string{"2026-01-20T10:00:00Z", "2026-01-20T10:00:05Z", "1"},
		[]string{"", "2026-01-20T10:00:05Z", "1"},
		[]string{"2026-01-20T10:00:07Z", "garbage", "0"},
		[]string{"2026-01-20T10:00:09Z"},
		[]string{"2026-01-20T10:00:10Z", "2026-01-20T10:00:12Z", "0"},
	)

	res, err := Normalize(tbl, FlagObservedStrict)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Summary.Total)
	assert.Equal(t, 3, res.Dropped)
	assert.Equal(t, Summary{Total: 2, Observed: 1, Outside: 1}, res.Summary)
}

func TestNormalizeEmpty(t *testing.T) {
	tbl := windowsTable(FlagObserved, []string{"x", "y", "1"})

	res, err := Normalize(tbl, FlagObserved)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.True(t, res.Epoch.IsZero())
	assert.Equal(t, Summary{}, res.Summary)
	assert.Equal(t, 0.0, res.Span())
}

func TestNormalizeIdempotent(t *testing.T) {
	tbl := windowsTable(FlagOutside,
		[]string{"2026-01-20T10:00:20Z", "2026-01-20T10:00:25Z", "0"},
		[]string{"2026-01-20T10:00:00Z", "2026-01-20T10:00:05Z", "1"},
		[]string{"bad", "2026-01-20T10:00:05Z", "1"},
	)

	first, err := Normalize(tbl, FlagOutside)
	require.NoError(t, err)
	second, err := Normalize(tbl, FlagOutside)
	require.NoError(t, err)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Rows, second.Rows)

	// feed the preview of the first pass back in
	p := first.Preview(0)
	again, err := Normalize(NewTable(p.Columns, p.Rows), FlagOutside)
	require.NoError(t, err)
	assert.Equal(t, first.Summary, again.Summary)
	assert.Equal(t, first.Epoch, again.Epoch)
}

func TestNormalizeDurationNeverNegative(t *testing.T) {
	tbl := windowsTable(FlagObserved,
		[]string{"2026-01-20T10:00:10Z", "2026-01-20T09:00:00Z", "1"},
		[]string{"2026-01-20T10:00:00Z", "2026-01-20T10:00:00Z", "1"},
		[]string{"2026-01-20T10:00:05Z", "2026-01-20T10:00:06.5Z", "1"},
	)

	res, err := Normalize(tbl, FlagObserved)
	require.NoError(t, err)
	for _, r := range res.Rows {
		assert.GreaterOrEqual(t, r.Duration, 0.0)
		assert.LessOrEqual(t, r.OffsetStart, r.OffsetStart+r.Duration)
	}
	assert.Equal(t, 1.5, res.Rows[1].Duration)
	assert.Equal(t, 10.0, res.Span())
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC)
	cases := map[string]time.Time{
		"2026-01-20T10:00:00Z":        want,
		"2026-01-20T11:00:00+01:00":   want,
		"2026-01-20 10:00:00+00:00":   want,
		"2026-01-20 10:00:00":         want,
		" 2026-01-20T10:00:00 ":       want,
		"2026-01-20 10:00":            want,
		"2026-01-20":                  time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		"2026-01-20T10:00:00.250Z":    want.Add(250 * time.Millisecond),
		"2026-01-20 10:00:00.5+00:00": want.Add(500 * time.Millisecond),
		"2026-01-20T19:00:00+0900":    want,
		"2026-01-20 19:00:00+0900":    want,
	}
	for raw, expected := range cases {
		got, ok := ParseTimestamp(raw)
		require.True(t, ok, raw)
		assert.True(t, expected.Equal(got), "%s: got %s", raw, got)
		assert.Equal(t, time.UTC, got.Location(), raw)
	}

	for _, raw := range []string{"", "  ", "yesterday", "2026-13-01", "10:00:00"} {
		_, ok := ParseTimestamp(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"True", "true", "TRUE", "1", "1.0", "-2", "yes", "Y", "t", "observed", "", " ", "NaN", "N/A", "null", "None"}
	falsy := []string{"False", "false", "0", "0.0", "no", "N", "f"}
	for _, s := range truthy {
		assert.True(t, ParseBool(s), s)
	}
	for _, s := range falsy {
		assert.False(t, ParseBool(s), s)
	}
}

func TestNormalizeEmptyFlagCell(t *testing.T) {
	rows := [][]string{
		{"2026-01-20T10:00:00Z", "2026-01-20T10:00:05Z", "True"},
		{"2026-01-20T10:00:05Z", "2026-01-20T10:00:09Z", ""},
		{"2026-01-20T10:00:09Z", "2026-01-20T10:00:10Z"},
	}

	res, err := Normalize(windowsTable(FlagObservedStrict, rows...), FlagObservedStrict)
	require.NoError(t, err)
	assert.True(t, res.Rows[1].Observed)
	assert.True(t, res.Rows[2].Observed)
	assert.Equal(t, Summary{Total: 3, Observed: 3, Outside: 0}, res.Summary)

	res, err = Normalize(windowsTable(FlagOutside, rows...), FlagOutside)
	require.NoError(t, err)
	assert.False(t, res.Rows[1].Observed)
	assert.False(t, res.Rows[2].Observed)
	assert.Equal(t, Summary{Total: 3, Observed: 0, Outside: 3}, res.Summary)
}

func TestIsMissing(t *testing.T) {
	for _, s := range []string{"", "  ", "NA", "n/a", "#N/A", "nan", "NULL", "None", "<NA>"} {
		assert.True(t, IsMissing(s), s)
	}
	for _, s := range []string{"0", "False", "none of them", "chrome"} {
		assert.False(t, IsMissing(s), s)
	}
}

func TestSegments(t *testing.T) {
	tbl := windowsTable(FlagObserved,
		[]string{"2026-01-20T10:00:00Z", "2026-01-20T10:00:05Z", "1"},
		[]string{"2026-01-20T10:00:05Z", "2026-01-20T10:00:09Z", "0"},
		[]string{"2026-01-20T10:00:09Z", "2026-01-20T10:00:10Z", "1"},
	)
	res, err := Normalize(tbl, FlagObserved)
	require.NoError(t, err)

	assert.Equal(t, []Segment{{Offset: 0, Width: 5}, {Offset: 9, Width: 1}}, res.Segments(true))
	assert.Equal(t, []Segment{{Offset: 5, Width: 4}}, res.Segments(false))
}

func TestTableHelpers(t *testing.T) {
	tbl := NewTable([]string{"\ufeffwindow_start", " window_end ", "is_observed", "title", "process"}, nil)

	assert.Equal(t, 0, tbl.Index(ColumnWindowStart))
	assert.Equal(t, 1, tbl.Index(ColumnWindowEnd))
	assert.Equal(t, -1, tbl.Index("app"))
	assert.Equal(t, FlagObserved, DetectFlagColumn(tbl))
	assert.Equal(t, []string{FlagObserved}, AvailableFlagColumns(tbl))
	assert.Equal(t, []string{"process", "title"}, AvailableContextColumns(tbl))
	assert.Equal(t, "", DetectFlagColumn(NewTable([]string{"a"}, nil)))
}
