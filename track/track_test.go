package track

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRasterizeOneCellPerSecond(t *testing.T) {
	segs := []Segment{{0, 5, 1}, {5, 4, 2}, {9, 1, 3}}

	got := Rasterize(segs, 10, 10)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 2, 2, 2, 2, 3}, got)
}

func TestRasterizeDominantOverlap(t *testing.T) {
	segs := []Segment{{0, 5, 1}, {5, 4, 2}, {9, 1, 3}}

	// two seconds per cell; ties stay with the earlier segment
	got := Rasterize(segs, 10, 5)
	assert.Equal(t, []int{1, 1, 1, 2, 2}, got)
}

func TestRasterizeGaps(t *testing.T) {
	segs := []Segment{{0, 2, 7}, {8, 2, 9}}

	got := Rasterize(segs, 10, 10)
	assert.Equal(t, []int{7, 7, Empty, Empty, Empty, Empty, Empty, Empty, 9, 9}, got)
}

func TestRasterizeZeroWidth(t *testing.T) {
	got := Rasterize([]Segment{{3, 0, 4}}, 10, 10)
	assert.Equal(t, 4, got[3])
	assert.Equal(t, Empty, got[2])

	// a covered cell is not taken over
	got = Rasterize([]Segment{{0, 10, 1}, {3, 0, 4}}, 10, 10)
	assert.Equal(t, 1, got[3])

	// a point at the very end lands in the last cell
	got = Rasterize([]Segment{{10, 0, 5}}, 10, 4)
	assert.Equal(t, []int{Empty, Empty, Empty, 5}, got)
}

func TestRasterizeDegenerate(t *testing.T) {
	assert.Nil(t, Rasterize(nil, 10, 0))
	assert.Equal(t, []int{Empty, Empty}, Rasterize(nil, 10, 2))
	assert.Equal(t, []int{6, Empty, Empty}, Rasterize([]Segment{{0, 0, 6}, {0, 0, 8}}, 0, 3))
}

func TestAxis(t *testing.T) {
	line := Axis(100, 40)
	assert.Len(t, []rune(line), 40)
	assert.True(t, strings.HasPrefix(line, "0s "))
	assert.True(t, strings.HasSuffix(line, "1m40s"))
	assert.Contains(t, line, "50s")

	assert.Equal(t, "", Axis(10, 0))
	assert.Len(t, []rune(Axis(7200, 4)), 4)
}

func TestFormatSeconds(t *testing.T) {
	cases := map[float64]string{
		0:    "0s",
		2.5:  "2.5s",
		42:   "42s",
		59.6: "60s",
		750:  "12m30s",
		7500: "2h5m0s",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatSeconds(in), "%v", in)
	}
}
