// Package track maps epoch-relative segments onto a fixed number of terminal
// cells so a timeline can be drawn one character per cell.
package track

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Empty marks a cell that no segment covers.
const Empty = -1

// Segment is a bar starting Start seconds after the epoch, Width seconds wide.
// Key identifies what the caller wants drawn for it.
type Segment struct {
	Start float64
	Width float64
	Key   int
}

// Rasterize splits [0, span] into width cells and returns for each cell the Key
// of the segment overlapping it the most, or Empty. On equal overlap the
// earlier segment keeps the cell. Zero-width segments only fill cells nothing
// else touches.
func Rasterize(segs []Segment, span float64, width int) []int {
	if width <= 0 {
		return nil
	}
	cells := make([]int, width)
	best := make([]float64, width)
	for i := range cells {
		cells[i] = Empty
		best[i] = -1
	}
	if len(segs) == 0 {
		return cells
	}
	if span <= 0 {
		cells[0] = segs[0].Key
		return cells
	}

	cellW := span / float64(width)
	for _, s := range segs {
		if s.Width <= 0 {
			continue
		}
		end := s.Start + s.Width
		first := clampCell(int(math.Floor(s.Start/cellW)), width)
		last := clampCell(int(math.Ceil(end/cellW))-1, width)
		for c := first; c <= last; c++ {
			lo := float64(c) * cellW
			hi := lo + cellW
			overlap := math.Min(end, hi) - math.Max(s.Start, lo)
			if overlap > 0 && overlap > best[c] {
				best[c] = overlap
				cells[c] = s.Key
			}
		}
	}
	for _, s := range segs {
		if s.Width > 0 {
			continue
		}
		c := clampCell(int(math.Floor(s.Start/cellW)), width)
		if cells[c] == Empty {
			best[c] = 0
			cells[c] = s.Key
		}
	}
	return cells
}

func clampCell(c, width int) int {
	if c < 0 {
		return 0
	}
	if c >= width {
		return width - 1
	}
	return c
}

// Axis returns a width-wide label line with offsets along [0, span].
func Axis(span float64, width int) string {
	if width <= 0 {
		return ""
	}
	ticks := 2
	switch {
	case width >= 80:
		ticks = 5
	case width >= 32:
		ticks = 3
	}

	line := []rune(strings.Repeat(" ", width))
	next := 0 // first free column
	for i := 0; i < ticks; i++ {
		frac := float64(i) / float64(ticks-1)
		label := []rune(FormatSeconds(span * frac))
		pos := int(math.Round(frac*float64(width-1))) - len(label)/2
		if i == 0 {
			pos = 0
		}
		if i == ticks-1 {
			pos = width - len(label)
		}
		if pos < next || pos < 0 || pos+len(label) > width {
			continue
		}
		copy(line[pos:], label)
		next = pos + len(label) + 1
	}
	return string(line)
}

// FormatSeconds renders an offset compactly: "0s", "2.5s", "42s", "12m30s".
func FormatSeconds(s float64) string {
	switch {
	case s >= 60:
		return time.Duration(s * float64(time.Second)).Round(time.Second).String()
	case s < 10 && s != math.Trunc(s):
		return strconv.FormatFloat(s, 'f', 1, 64) + "s"
	default:
		return strconv.FormatFloat(s, 'f', 0, 64) + "s"
	}
}
