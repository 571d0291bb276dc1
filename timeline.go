package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/andareed/siftly-obsmap/palette"
	"github.com/andareed/siftly-obsmap/track"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const (
	observationCaption = "This area indicates time outside the system's observation."
	contextCaption     = "Foreground window context only. No behavioural inference."
	keyOutside         = 0
	keyObserved        = 1
)

// renderCells draws a rasterized track, grouping equal neighbouring cells so
// each run is styled once.
func renderCells(cells []int, glyph func(key int) (string, lipgloss.Style)) string {
	var b strings.Builder
	for i := 0; i < len(cells); {
		j := i
		for j < len(cells) && cells[j] == cells[i] {
			j++
		}
		if cells[i] == track.Empty {
			b.WriteString(strings.Repeat(" ", j-i))
		} else {
			g, st := glyph(cells[i])
			b.WriteString(st.Render(strings.Repeat(g, j-i)))
		}
		i = j
	}
	return b.String()
}

func repeatLines(line string, n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func observationCells(res *boundary.Result, width int) []int {
	segs := make([]track.Segment, 0, len(res.Rows))
	for _, r := range res.Rows {
		key := keyOutside
		if r.Observed {
			key = keyObserved
		}
		segs = append(segs, track.Segment{Start: r.OffsetStart, Width: r.Duration, Key: key})
	}
	return track.Rasterize(segs, res.Span(), width)
}

func contextCells(res *boundary.Result, ct *boundary.ContextTrack, width int) []int {
	segs := make([]track.Segment, 0, len(res.Rows))
	for i, r := range res.Rows {
		segs = append(segs, track.Segment{Start: r.OffsetStart, Width: r.Duration, Key: ct.ColorIndex[i]})
	}
	return track.Rasterize(segs, res.Span(), width)
}

func (m *model) observationTrackView(width int) string {
	res := m.data.result
	cells := observationCells(res, width)
	line := renderCells(cells, func(key int) (string, lipgloss.Style) {
		if key == keyObserved {
			return observedGlyph, observedCell
		}
		return outsideGlyph, outsideCell
	})

	parts := []string{
		sectionStyle.Render("Observed vs Outside observation"),
		repeatLines(line, trackHeight),
		m.cursorLine(width),
		axisStyle.Render(track.Axis(res.Span(), width)),
		axisStyle.Render(axisLabel(res.Epoch)),
		captionStyle.Render(outsideCell.Render(outsideGlyph+outsideGlyph) + " " + observationCaption),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *model) contextTrackView(width int) string {
	res, ct := m.data.result, m.data.track
	title := sectionStyle.Render("Active window segments by " + ct.Column)
	cells := contextCells(res, ct, width)
	line := renderCells(cells, func(key int) (string, lipgloss.Style) {
		return contextGlyph, lipgloss.NewStyle().Foreground(palette.Lip(key))
	})

	parts := []string{
		title,
		repeatLines(line, trackHeight),
		axisStyle.Render(track.Axis(res.Span(), width)),
		legendView(ct, width),
		captionStyle.Render(contextCaption),
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// legendView lists the top labels with their segment counts, wrapped to width.
func legendView(ct *boundary.ContextTrack, width int) string {
	items := make([]string, 0, len(ct.Legend))
	for _, e := range ct.Legend {
		swatch := lipgloss.NewStyle().Foreground(palette.Lip(e.ColorIndex)).Render(legendGlyph)
		items = append(items, fmt.Sprintf("%s %s (%s)", swatch, e.Label, fmtCount(e.Count)))
	}
	legend := strings.Join(items, "  ")
	if hidden := len(ct.Distinct) - len(ct.Legend); hidden > 0 {
		legend += summaryLabel.Render(fmt.Sprintf("  +%s more", fmtCount(hidden)))
	}
	return wordwrap.String(legend, width)
}

// cursorLine marks where the selected preview row sits on the track.
func (m *model) cursorLine(width int) string {
	res := m.data.result
	if width <= 0 || m.cursor < 0 || m.cursor >= len(res.Rows) {
		return ""
	}
	span := res.Span()
	pos := 0
	if span > 0 {
		pos = int(math.Floor(res.Rows[m.cursor].OffsetStart / span * float64(width)))
	}
	pos = min(max(pos, 0), width-1)
	return strings.Repeat(" ", pos) + axisStyle.Render("▲")
}

func axisLabel(epoch time.Time) string {
	return "seconds since " + epoch.UTC().Format(time.RFC3339)
}
