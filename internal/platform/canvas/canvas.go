package canvas

import (
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	"gonum.org/v1/gonum/spatial/r2"
)

// Style describes how a primitive is painted. Empty Fill means no fill.
type Style struct {
	Stroke      string
	Fill        string
	StrokeWidth float64
	Opacity     float64
	FontSize    float64
	Anchor      string
}

// Canvas is the 2D drawing target the board is replayed onto.
type Canvas interface {
	Clear(size r2.Vec, color string)
	Rect(origin, size r2.Vec, style Style)
	Line(from, to r2.Vec, style Style)
	Circle(center r2.Vec, radius float64, style Style)
	Arc(center r2.Vec, radius, startAngle, endAngle float64, style Style)
	Text(at r2.Vec, text string, style Style)
}

// Replay paints pitch drawing commands in order.
func Replay(c Canvas, cmds []pitch.Command) {
	for _, cmd := range cmds {
		style := Style{Stroke: cmd.Color, StrokeWidth: cmd.StrokeWidth}
		if cmd.Filled {
			style.Fill = cmd.Color
		}

		switch cmd.Kind {
		case pitch.CommandClear:
			c.Clear(cmd.Size, cmd.Color)
		case pitch.CommandRect:
			c.Rect(cmd.Origin, cmd.Size, style)
		case pitch.CommandLine:
			c.Line(cmd.Origin, cmd.Target, style)
		case pitch.CommandCircle:
			c.Circle(cmd.Origin, cmd.Radius, style)
		case pitch.CommandArc:
			c.Arc(cmd.Origin, cmd.Radius, cmd.StartAngle, cmd.EndAngle, style)
		}
	}
}

// Arrow draws a line with a two-stroke head at to.
func Arrow(c Canvas, from, to r2.Vec, headLength float64, style Style) {
	c.Line(from, to, style)

	d := r2.Sub(to, from)
	length := r2.Norm(d)
	if length == 0 || headLength <= 0 {
		return
	}
	unit := r2.Scale(1/length, d)
	normal := r2.Vec{X: -unit.Y, Y: unit.X}
	back := r2.Sub(to, r2.Scale(headLength, unit))
	c.Line(to, r2.Add(back, r2.Scale(headLength/2, normal)), style)
	c.Line(to, r2.Sub(back, r2.Scale(headLength/2, normal)), style)
}
