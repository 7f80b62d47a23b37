package pitch

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Pitch space is a fixed 110x68 unit plane. Teams attack left to right:
// x=0 is the defending goal line, x=110 the attacking one.
const (
	Length = 110.0
	Width  = 68.0

	// Canonical proportions of the rendered pitch diagram.
	AspectWidth  = 467.0
	AspectHeight = 290.0
)

// Dimensions is the pixel size of the current render surface.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (d Dimensions) IsZero() bool {
	return d.Width <= 0 || d.Height <= 0
}

// HeightForWidth derives the surface height from a container width.
func HeightForWidth(width float64) float64 {
	return width * AspectHeight / AspectWidth
}

// DimensionsForWidth returns the surface size for a container width.
// Negative or NaN widths collapse to an empty surface.
func DimensionsForWidth(width float64) Dimensions {
	if math.IsNaN(width) || width < 0 {
		width = 0
	}
	return Dimensions{Width: width, Height: HeightForWidth(width)}
}

// Mapper converts between pitch space and render space for one surface size.
type Mapper struct {
	dims Dimensions
}

func NewMapper(dims Dimensions) Mapper {
	return Mapper{dims: dims}
}

func (m Mapper) Dimensions() Dimensions {
	return m.dims
}

// ToPixel scales a pitch-space point into render space. Out-of-range points
// are clamped onto the pitch first.
func (m Mapper) ToPixel(p r2.Vec) r2.Vec {
	p = ClampPitch(p)
	return r2.Vec{
		X: p.X / Length * m.dims.Width,
		Y: p.Y / Width * m.dims.Height,
	}
}

// ToPitch is the inverse of ToPixel, used for hit-testing.
func (m Mapper) ToPitch(px r2.Vec) r2.Vec {
	if m.dims.IsZero() {
		return r2.Vec{}
	}
	px = r2.Vec{
		X: clamp(px.X, 0, m.dims.Width),
		Y: clamp(px.Y, 0, m.dims.Height),
	}
	return r2.Vec{
		X: px.X / m.dims.Width * Length,
		Y: px.Y / m.dims.Height * Width,
	}
}

// ClampPitch pins a point onto the 110x68 plane.
func ClampPitch(p r2.Vec) r2.Vec {
	return r2.Vec{
		X: clamp(p.X, 0, Length),
		Y: clamp(p.Y, 0, Width),
	}
}

// ValidPoint reports whether a point carries usable coordinates.
func ValidPoint(p *r2.Vec) bool {
	if p == nil {
		return false
	}
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
