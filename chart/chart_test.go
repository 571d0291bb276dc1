package chart

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/andareed/siftly-obsmap/boundary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalized(t *testing.T, records [][]string) *boundary.Result {
	t.Helper()
	tbl := boundary.NewTable([]string{"window_start", "window_end", "is_observed", "process"}, records)
	res, err := boundary.Normalize(tbl, "is_observed")
	require.NoError(t, err)
	return res
}

// columnHas reports whether any pixel in column x is within a few levels of want.
func columnHas(img image.Image, x int, want [3]uint8) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		r, g, bl, _ := img.At(x, y).RGBA()
		got := [3]int{int(r >> 8), int(g >> 8), int(bl >> 8)}
		ok := true
		for i := range got {
			if d := got[i] - int(want[i]); d > 8 || d < -8 {
				ok = false
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func TestRenderObservationSize(t *testing.T) {
	res := normalized(t, [][]string{
		{"2026-01-20 09:00:00", "2026-01-20 09:10:00", "1", "code.exe"},
	})

	var buf bytes.Buffer
	require.NoError(t, RenderObservation(&buf, res, Options{Width: 600, Height: 200}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())

	// a single observed window fills the plot, so the middle column is observed blue
	assert.True(t, columnHas(img, 300, [3]uint8{0x1f, 0x77, 0xb4}))
}

func TestRenderDefaults(t *testing.T) {
	res := normalized(t, [][]string{
		{"2026-01-20 09:00:00", "2026-01-20 09:01:00", "0", "a"},
		{"2026-01-20 09:01:00", "2026-01-20 09:02:00", "1", "b"},
	})

	var buf bytes.Buffer
	require.NoError(t, RenderObservation(&buf, res, Options{}))
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1800, cfg.Width)
	assert.Equal(t, 280, cfg.Height)
}

func TestRenderContext(t *testing.T) {
	res := normalized(t, [][]string{
		{"2026-01-20 09:00:00", "2026-01-20 09:30:00", "1", "code.exe"},
	})
	ct, err := res.BucketByContext("process")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderContext(&buf, res, ct, Options{Width: 400, Height: 160}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.True(t, columnHas(img, 200, [3]uint8{0x1f, 0x77, 0xb4}))

	assert.Error(t, RenderContext(&buf, res, nil, Options{}))
}

func TestRenderZeroSpan(t *testing.T) {
	res := normalized(t, [][]string{
		{"2026-01-20 09:00:00", "2026-01-20 09:00:00", "1", "a"},
	})
	var buf bytes.Buffer
	assert.NoError(t, RenderObservation(&buf, res, Options{Width: 300, Height: 120}))
}

func TestRenderEmpty(t *testing.T) {
	res := normalized(t, nil)
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderObservation(&buf, res, Options{}), ErrNoWindows)
	assert.ErrorIs(t, RenderContext(&buf, res, &boundary.ContextTrack{}, Options{}), ErrNoWindows)
}
