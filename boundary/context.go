package boundary

import "sort"

const (
	// NoContext is the selector value meaning no context track.
	NoContext = "(none)"
	// UnknownLabel replaces empty or missing context values.
	UnknownLabel = "unknown"
	// TitleMaxLen caps title labels, counted in runes.
	TitleMaxLen = 60
	// PaletteSize is the number of distinct label colours before they repeat.
	PaletteSize = 20
	// LegendSize is how many labels the legend keeps.
	LegendSize = 30
)

// LegendEntry is one line of the context legend.
type LegendEntry struct {
	Label      string `json:"label" yaml:"label"`
	Count      int    `json:"segments_count" yaml:"segments_count"`
	ColorIndex int    `json:"color_index" yaml:"color_index"`
}

// ContextTrack labels every normalized row with its foreground window context.
// Labels and ColorIndex are parallel to Result.Rows.
type ContextTrack struct {
	Column     string
	Labels     []string
	ColorIndex []int
	// Distinct holds every label in first-seen order.
	Distinct []string
	Legend   []LegendEntry
}

// BucketByContext builds the context track for column. It returns nil when
// column is empty or NoContext.
func (res *Result) BucketByContext(column string) (*ContextTrack, error) {
	if column == "" || column == NoContext {
		return nil, nil
	}
	idx := res.columnIndex(column)
	if idx < 0 {
		return nil, &SchemaError{Missing: []string{column}}
	}

	ct := &ContextTrack{
		Column:     column,
		Labels:     make([]string, len(res.Rows)),
		ColorIndex: make([]int, len(res.Rows)),
	}
	colors := make(map[string]int)
	counts := make(map[string]int)
	for i, r := range res.Rows {
		label := contextLabel(cell(r.Record, idx), column)
		c, seen := colors[label]
		if !seen {
			c = len(ct.Distinct) % PaletteSize
			colors[label] = c
			ct.Distinct = append(ct.Distinct, label)
		}
		ct.Labels[i] = label
		ct.ColorIndex[i] = c
		counts[label]++
	}

	order := make(map[string]int, len(ct.Distinct))
	for i, l := range ct.Distinct {
		order[l] = i
	}
	legend := make([]LegendEntry, 0, len(ct.Distinct))
	for _, l := range ct.Distinct {
		legend = append(legend, LegendEntry{Label: l, Count: counts[l], ColorIndex: colors[l]})
	}
	sort.SliceStable(legend, func(a, b int) bool {
		if legend[a].Count != legend[b].Count {
			return legend[a].Count > legend[b].Count
		}
		return order[legend[a].Label] < order[legend[b].Label]
	})
	if len(legend) > LegendSize {
		legend = legend[:LegendSize]
	}
	ct.Legend = legend
	return ct, nil
}

func contextLabel(raw, column string) string {
	if IsMissing(raw) {
		return UnknownLabel
	}
	if column == ContextTitle {
		r := []rune(raw)
		if len(r) > TitleMaxLen {
			return string(r[:TitleMaxLen])
		}
	}
	return raw
}
