// Package palette holds the categorical colours shared by the terminal and
// PNG renderers.
package palette

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Tab20 is the 20 colour categorical palette used for context labels.
var Tab20 = []string{
	"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c",
	"#98df8a", "#d62728", "#ff9896", "#9467bd", "#c5b0d5",
	"#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f",
	"#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

const (
	// Observed is the colour of windows inside observation.
	Observed = "#1f77b4"
	// Fallback is used for colour indices outside the palette.
	Fallback = "#808080"
	// Background is what outside windows fade towards in the terminal.
	Background = "#1c1c1c"
)

// Hex returns the palette entry for a colour index, wrapping around.
func Hex(i int) string {
	if i < 0 {
		return Fallback
	}
	return Tab20[i%len(Tab20)]
}

// Lip returns the lipgloss colour for a colour index.
func Lip(i int) lipgloss.Color {
	return lipgloss.Color(Hex(i))
}

// Fade blends hex towards Background by t in [0,1].
func Fade(hex string, t float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Fallback
	}
	switch {
	case t <= 0:
		return c.Hex()
	case t >= 1:
		return Background
	}
	bg, _ := colorful.Hex(Background)
	return c.BlendLab(bg, t).Clamped().Hex()
}

// Drawing converts hex to a go-chart colour with the given alpha.
func Drawing(hex string, alpha uint8) drawing.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(Fallback)
	}
	r, g, b := c.RGB255()
	return drawing.Color{R: r, G: g, B: b, A: alpha}
}
