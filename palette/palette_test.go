package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestHexWraps(t *testing.T) {
	assert.Len(t, Tab20, 20)
	assert.Equal(t, Tab20[0], Hex(0))
	assert.Equal(t, Tab20[3], Hex(23))
	assert.Equal(t, Fallback, Hex(-1))
}

func TestDrawing(t *testing.T) {
	assert.Equal(t, drawing.Color{R: 0x1f, G: 0x77, B: 0xb4, A: 255}, Drawing(Observed, 255))
	assert.Equal(t, drawing.Color{R: 0x80, G: 0x80, B: 0x80, A: 10}, Drawing("nope", 10))
}

func TestFade(t *testing.T) {
	assert.Equal(t, Observed, Fade(Observed, 0))
	assert.Equal(t, Background, Fade(Observed, 1))
	assert.NotEqual(t, Observed, Fade(Observed, 0.5))
	assert.Equal(t, Fallback, Fade("zzz", 0.5))
}
