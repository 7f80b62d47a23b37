package pitch

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

type CommandKind string

const (
	CommandClear  CommandKind = "clear"
	CommandRect   CommandKind = "rect"
	CommandLine   CommandKind = "line"
	CommandCircle CommandKind = "circle"
	CommandArc    CommandKind = "arc"
)

// Element names the pitch marking a command belongs to.
type Element string

const (
	ElementBackground   Element = "background"
	ElementBoundary     Element = "boundary"
	ElementHalfwayLine  Element = "halfway_line"
	ElementCenterCircle Element = "center_circle"
	ElementCenterSpot   Element = "center_spot"
	ElementPenaltyArea  Element = "penalty_area"
	ElementGoalArea     Element = "goal_area"
	ElementPenaltySpot  Element = "penalty_spot"
	ElementPenaltyArc   Element = "penalty_arc"
	ElementCornerArc    Element = "corner_arc"
	ElementGoal         Element = "goal"
)

// Marking proportions. X ratios are fractions of the surface width, Y ratios
// of the surface height.
const (
	penaltyAreaDepthRatio   = 0.20
	penaltyAreaSpanRatio    = 0.60
	goalAreaDepthRatio      = 0.07
	goalAreaSpanRatio       = 0.30
	penaltySpotRatio        = 0.13
	centerCircleRadiusRatio = 0.135
	cornerArcRadiusRatio    = 0.02
	goalSpanRatio           = 0.11
	lineWidthRatio          = 0.004
	spotRadiusRatio         = 0.006
	goalStrokeFactor        = 3.0
	minLineWidth            = 1.0
)

// Command is one drawing primitive in render space. Angles are radians in
// screen orientation (y grows downwards, positive sweep is clockwise).
type Command struct {
	Kind        CommandKind `json:"kind"`
	Element     Element     `json:"element"`
	Origin      r2.Vec      `json:"origin"`
	Target      r2.Vec      `json:"target"`
	Size        r2.Vec      `json:"size"`
	Radius      float64     `json:"radius,omitempty"`
	StartAngle  float64     `json:"start_angle,omitempty"`
	EndAngle    float64     `json:"end_angle,omitempty"`
	Filled      bool        `json:"filled,omitempty"`
	Color       string      `json:"color"`
	StrokeWidth float64     `json:"stroke_width,omitempty"`
}

// Colors configures the pitch fill and the marking lines.
type Colors struct {
	Fill string `json:"fill"`
	Line string `json:"line"`
}

func DefaultColors() Colors {
	return Colors{Fill: "#2e7d32", Line: "#ffffff"}
}

// LineWidth is the marking stroke used for a surface.
func LineWidth(dims Dimensions) float64 {
	return math.Max(minLineWidth, dims.Width*lineWidthRatio)
}

// Render returns the full static layer for a surface. The first command always
// clears the surface so a redraw after resize never smears old output.
func Render(dims Dimensions, colors Colors) []Command {
	if colors.Fill == "" || colors.Line == "" {
		defaults := DefaultColors()
		if colors.Fill == "" {
			colors.Fill = defaults.Fill
		}
		if colors.Line == "" {
			colors.Line = defaults.Line
		}
	}

	w, h := dims.Width, dims.Height
	out := make([]Command, 0, 24)
	out = append(out, Command{
		Kind:    CommandClear,
		Element: ElementBackground,
		Size:    r2.Vec{X: w, Y: h},
		Color:   colors.Fill,
		Filled:  true,
	})
	if dims.IsZero() {
		return out
	}

	b := markingBuilder{dims: dims, color: colors.Line, stroke: LineWidth(dims)}
	midY := h / 2

	b.rect(ElementBoundary, r2.Vec{}, r2.Vec{X: w, Y: h})
	b.line(ElementHalfwayLine, r2.Vec{X: w / 2, Y: 0}, r2.Vec{X: w / 2, Y: h}, b.stroke)

	centerRadius := h * centerCircleRadiusRatio
	b.circle(ElementCenterCircle, r2.Vec{X: w / 2, Y: midY}, centerRadius, false)
	b.circle(ElementCenterSpot, r2.Vec{X: w / 2, Y: midY}, b.spotRadius(), true)

	boxDepth := w * penaltyAreaDepthRatio
	boxSpan := h * penaltyAreaSpanRatio
	b.rect(ElementPenaltyArea, r2.Vec{X: 0, Y: midY - boxSpan/2}, r2.Vec{X: boxDepth, Y: boxSpan})
	b.rect(ElementPenaltyArea, r2.Vec{X: w - boxDepth, Y: midY - boxSpan/2}, r2.Vec{X: boxDepth, Y: boxSpan})

	goalAreaDepth := w * goalAreaDepthRatio
	goalAreaSpan := h * goalAreaSpanRatio
	b.rect(ElementGoalArea, r2.Vec{X: 0, Y: midY - goalAreaSpan/2}, r2.Vec{X: goalAreaDepth, Y: goalAreaSpan})
	b.rect(ElementGoalArea, r2.Vec{X: w - goalAreaDepth, Y: midY - goalAreaSpan/2}, r2.Vec{X: goalAreaDepth, Y: goalAreaSpan})

	spotX := w * penaltySpotRatio
	b.circle(ElementPenaltySpot, r2.Vec{X: spotX, Y: midY}, b.spotRadius(), true)
	b.circle(ElementPenaltySpot, r2.Vec{X: w - spotX, Y: midY}, b.spotRadius(), true)

	// Only the part of the arc outside the penalty area is drawn.
	if gap := boxDepth - spotX; centerRadius > gap {
		theta := math.Acos(gap / centerRadius)
		b.arc(ElementPenaltyArc, r2.Vec{X: spotX, Y: midY}, centerRadius, -theta, theta)
		b.arc(ElementPenaltyArc, r2.Vec{X: w - spotX, Y: midY}, centerRadius, math.Pi-theta, math.Pi+theta)
	}

	cornerRadius := h * cornerArcRadiusRatio
	b.arc(ElementCornerArc, r2.Vec{X: 0, Y: 0}, cornerRadius, 0, math.Pi/2)
	b.arc(ElementCornerArc, r2.Vec{X: w, Y: 0}, cornerRadius, math.Pi/2, math.Pi)
	b.arc(ElementCornerArc, r2.Vec{X: w, Y: h}, cornerRadius, math.Pi, 3*math.Pi/2)
	b.arc(ElementCornerArc, r2.Vec{X: 0, Y: h}, cornerRadius, 3*math.Pi/2, 2*math.Pi)

	goalSpan := h * goalSpanRatio
	b.line(ElementGoal, r2.Vec{X: 0, Y: midY - goalSpan/2}, r2.Vec{X: 0, Y: midY + goalSpan/2}, b.stroke*goalStrokeFactor)
	b.line(ElementGoal, r2.Vec{X: w, Y: midY - goalSpan/2}, r2.Vec{X: w, Y: midY + goalSpan/2}, b.stroke*goalStrokeFactor)

	return append(out, b.out...)
}

type markingBuilder struct {
	dims   Dimensions
	color  string
	stroke float64
	out    []Command
}

func (b *markingBuilder) spotRadius() float64 {
	return math.Max(b.stroke*1.5, b.dims.Width*spotRadiusRatio)
}

func (b *markingBuilder) rect(el Element, origin, size r2.Vec) {
	b.out = append(b.out, Command{Kind: CommandRect, Element: el, Origin: origin, Size: size, Color: b.color, StrokeWidth: b.stroke})
}

func (b *markingBuilder) line(el Element, from, to r2.Vec, stroke float64) {
	b.out = append(b.out, Command{Kind: CommandLine, Element: el, Origin: from, Target: to, Color: b.color, StrokeWidth: stroke})
}

func (b *markingBuilder) circle(el Element, center r2.Vec, radius float64, filled bool) {
	b.out = append(b.out, Command{Kind: CommandCircle, Element: el, Origin: center, Radius: radius, Filled: filled, Color: b.color, StrokeWidth: b.stroke})
}

func (b *markingBuilder) arc(el Element, center r2.Vec, radius, start, end float64) {
	b.out = append(b.out, Command{Kind: CommandArc, Element: el, Origin: center, Radius: radius, StartAngle: start, EndAngle: end, Color: b.color, StrokeWidth: b.stroke})
}

// CountElements tallies commands per element, handy for legends and tests.
func CountElements(cmds []Command) map[Element]int {
	out := make(map[Element]int, 12)
	for _, c := range cmds {
		out[c.Element]++
	}
	return out
}
