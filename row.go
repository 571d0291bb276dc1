package main

import (
	"strings"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type renderedRow struct {
	cols   []string
	height int
	// sourceLine is the data line of the row in the CSV, not its preview position.
	sourceLine int
	observed   bool
}

func rowsFromPreview(p boundary.Preview, res *boundary.Result) []renderedRow {
	rows := make([]renderedRow, 0, len(p.Rows))
	for i, cols := range p.Rows {
		r := renderedRow{cols: cols, height: 1, sourceLine: p.Source[i]}
		if res != nil && i < len(res.Rows) {
			r.observed = res.Rows[i].Observed
		}
		rows = append(rows, r)
	}
	return rows
}

func (r *renderedRow) Join(sep string) string {
	return strings.Join(r.cols, sep)
}

// String is the tab separated form used for search and the clipboard.
func (r *renderedRow) String() string {
	return r.Join("\t")
}

// Render lays the cells out at their column widths, truncating instead of
// wrapping so every preview row stays one line.
func (r *renderedRow) Render(style lipgloss.Style, colsMeta []ColumnMeta) string {
	var rendered []string

	for i, text := range r.cols {
		if i >= len(colsMeta) {
			break
		}
		meta := colsMeta[i]
		if !meta.Visible || meta.Width <= 0 {
			continue
		}
		inner := max(0, meta.Width-style.GetHorizontalFrameSize())
		cell := style.Width(meta.Width).Render(truncate.StringWithTail(text, uint(inner), "…"))
		rendered = append(rendered, cell)
	}

	joined := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	r.height = lipgloss.Height(joined)
	return joined
}
