// Package chart renders the observation and context tracks as PNG images.
package chart

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/andareed/siftly-obsmap/palette"
	"github.com/andareed/siftly-obsmap/track"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoWindows is returned when there is nothing to draw.
var ErrNoWindows = errors.New("no windows to draw")

const (
	hatchSpacing = 6
	barInset     = 4
)

// Options controls the image size. Zero values pick the defaults.
type Options struct {
	Width  int
	Height int
}

func (o Options) size(defW, defH int) (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defW
	}
	if h <= 0 {
		h = defH
	}
	return w, h
}

type bar struct {
	x0, w float64
	fill  drawing.Color
	hatch bool
}

// RenderObservation draws observed windows solid and outside windows hatched.
func RenderObservation(w io.Writer, res *boundary.Result, opts Options) error {
	if len(res.Rows) == 0 {
		return ErrNoWindows
	}
	observed := palette.Drawing(palette.Observed, 255)
	outside := palette.Drawing(palette.Observed, 128)

	bars := make([]bar, 0, len(res.Rows))
	for _, s := range res.Segments(false) {
		bars = append(bars, bar{x0: s.Offset, w: s.Width, fill: outside, hatch: true})
	}
	for _, s := range res.Segments(true) {
		bars = append(bars, bar{x0: s.Offset, w: s.Width, fill: observed})
	}
	width, height := opts.size(1800, 280)
	return render(w, "Observed vs Outside observation", res.Epoch, res.Span(), bars, width, height)
}

// RenderContext draws each window in the colour of its context label.
func RenderContext(w io.Writer, res *boundary.Result, ct *boundary.ContextTrack, opts Options) error {
	if len(res.Rows) == 0 {
		return ErrNoWindows
	}
	if ct == nil {
		return errors.New("no context track selected")
	}
	bars := make([]bar, 0, len(res.Rows))
	for i, r := range res.Rows {
		bars = append(bars, bar{
			x0:   r.OffsetStart,
			w:    r.Duration,
			fill: palette.Drawing(palette.Hex(ct.ColorIndex[i]), 255),
		})
	}
	width, height := opts.size(1800, 240)
	return render(w, fmt.Sprintf("Active window segments by %s", ct.Column), res.Epoch, res.Span(), bars, width, height)
}

func render(w io.Writer, title string, epoch time.Time, span float64, bars []bar, width, height int) error {
	if span <= 0 {
		span = 1
	}
	ch := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 24, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  fmt.Sprintf("seconds since %s", epoch.UTC().Format(time.RFC3339)),
			Range: &chart.ContinuousRange{Min: 0, Max: span},
			Ticks: ticks(span, 6),
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: 0, Max: 10},
		},
		Series: []chart.Series{
			// go-chart needs a series to size the axes; this one is invisible.
			chart.ContinuousSeries{
				XValues: []float64{0, span},
				YValues: []float64{0, 0},
				Style:   chart.Style{StrokeWidth: 1, StrokeColor: drawing.Color{R: 255, G: 255, B: 255, A: 1}},
			},
		},
	}
	ch.Elements = []chart.Renderable{barsRenderable(bars, span)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %q: %w", title, err)
	}
	return nil
}

func ticks(span float64, n int) []chart.Tick {
	out := make([]chart.Tick, 0, n)
	for i := 0; i < n; i++ {
		v := span * float64(i) / float64(n-1)
		out = append(out, chart.Tick{Value: v, Label: track.FormatSeconds(v)})
	}
	return out
}

func barsRenderable(bars []bar, span float64) chart.Renderable {
	return func(r chart.Renderer, canvas chart.Box, _ chart.Style) {
		top := canvas.Top + barInset
		bottom := canvas.Bottom - barInset
		px := func(x float64) int {
			return canvas.Left + int(x/span*float64(canvas.Width()))
		}
		for _, b := range bars {
			if b.w <= 0 {
				continue
			}
			left := px(b.x0)
			right := max(px(b.x0+b.w), left+1)
			fillRect(r, left, top, right, bottom, b.fill)
			if b.hatch {
				hatch(r, left, top, right, bottom)
			}
		}
	}
}

func fillRect(r chart.Renderer, left, top, right, bottom int, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(left, top)
	r.LineTo(right, top)
	r.LineTo(right, bottom)
	r.LineTo(left, bottom)
	r.Close()
	r.Fill()
}

// hatch strokes "////" lines clipped to the rectangle.
func hatch(r chart.Renderer, left, top, right, bottom int) {
	h := bottom - top
	r.SetStrokeColor(drawing.Color{R: 255, G: 255, B: 255, A: 200})
	r.SetStrokeWidth(1)
	for k := left - h; k < right; k += hatchSpacing {
		x0, y0 := k, bottom
		x1, y1 := k+h, top
		if x0 < left {
			y0 -= left - x0
			x0 = left
		}
		if x1 > right {
			y1 += x1 - right
			x1 = right
		}
		if x0 >= x1 {
			continue
		}
		r.MoveTo(x0, y0)
		r.LineTo(x1, y1)
		r.Stroke()
	}
}
