package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestHeightForWidth_KeepsAspectRatio(t *testing.T) {
	t.Parallel()

	for _, w := range []float64{0, 1, 290, 467, 500, 933.5, 1920} {
		assert.Equal(t, w*290/467, HeightForWidth(w), "width=%v", w)
	}
}

func TestDimensionsForWidth_NegativeCollapses(t *testing.T) {
	t.Parallel()

	dims := DimensionsForWidth(-10)
	assert.True(t, dims.IsZero())
	assert.Equal(t, 0.0, dims.Height)
}

func TestMapper_RoundTrip(t *testing.T) {
	t.Parallel()

	mapper := NewMapper(DimensionsForWidth(467))
	for x := 0.0; x <= Length; x += 5.5 {
		for y := 0.0; y <= Width; y += 3.4 {
			p := r2.Vec{X: x, Y: y}
			got := mapper.ToPitch(mapper.ToPixel(p))
			require.InDelta(t, p.X, got.X, 1e-9)
			require.InDelta(t, p.Y, got.Y, 1e-9)
		}
	}
}

func TestMapper_ToPixelScenario(t *testing.T) {
	t.Parallel()

	mapper := NewMapper(Dimensions{Width: 500, Height: 300})
	start := mapper.ToPixel(r2.Vec{X: 20, Y: 10})
	end := mapper.ToPixel(r2.Vec{X: 40, Y: 30})

	assert.InDelta(t, 90.9, start.X, 0.05)
	assert.InDelta(t, 44.1, start.Y, 0.05)
	assert.InDelta(t, 181.8, end.X, 0.05)
	assert.InDelta(t, 132.4, end.Y, 0.05)
}

func TestMapper_ClampsOutOfRange(t *testing.T) {
	t.Parallel()

	mapper := NewMapper(Dimensions{Width: 110, Height: 68})
	got := mapper.ToPixel(r2.Vec{X: -20, Y: 500})
	assert.Equal(t, r2.Vec{X: 0, Y: 68}, got)

	back := mapper.ToPitch(r2.Vec{X: 1000, Y: -3})
	assert.Equal(t, r2.Vec{X: Length, Y: 0}, back)
}

func TestMapper_ZeroSurfaceMapsToOrigin(t *testing.T) {
	t.Parallel()

	mapper := NewMapper(Dimensions{})
	assert.Equal(t, r2.Vec{}, mapper.ToPitch(r2.Vec{X: 10, Y: 10}))
	assert.Equal(t, r2.Vec{}, mapper.ToPixel(r2.Vec{X: 10, Y: 10}))
}

func TestValidPoint(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidPoint(nil))
	assert.False(t, ValidPoint(&r2.Vec{X: math.NaN(), Y: 1}))
	assert.True(t, ValidPoint(&r2.Vec{X: 1, Y: 1}))
}
