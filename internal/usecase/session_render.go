package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/riskibarqy/tactical-board/internal/domain/analytics"
	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/marker"
	"github.com/riskibarqy/tactical-board/internal/platform/canvas"
	"gonum.org/v1/gonum/spatial/r2"
)

var (
	sideFill = map[formation.Side]string{
		formation.SideHome: "#1e88e5",
		formation.SideAway: "#e53935",
	}
	stateStroke = map[marker.VisualState]string{
		marker.StateIdle:       "#ffffff",
		marker.StateSelected:   "#ffeb3b",
		marker.StateSwapTarget: "#ff9800",
	}
)

// RenderSVG draws the pitch, the on-pitch markers and optionally a vector
// overlay into w as one SVG document. Every layer is laid out with the same
// surface snapshot; a concurrent resize applies to the next frame.
func (s *Session) RenderSVG(ctx context.Context, w io.Writer, overlay *AnalyticsInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.Session.RenderSVG")
	defer span.End()

	var q *analytics.Query
	if overlay != nil {
		parsed, err := s.query(*overlay)
		if err != nil {
			return err
		}
		q = &parsed
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	s.touch()
	mapper := s.surface.Mapper()
	board := s.boardLocked(mapper)
	s.mu.Unlock()

	dims := mapper.Dimensions()
	cmds, err := s.pitchFor(ctx, dims)
	if err != nil {
		return err
	}

	svg := canvas.NewSVG(dims.Width, dims.Height)
	defer svg.Release()
	canvas.Replay(svg, cmds)

	if q != nil {
		vectors, err := s.vectorsFor(ctx, *q, mapper)
		if err != nil {
			return err
		}
		head := dims.Width * 0.012
		for _, v := range vectors.Vectors {
			canvas.Arrow(svg, v.Start, v.End, head, canvas.Style{Stroke: v.Color, StrokeWidth: 1.5, Opacity: 0.85})
		}
	}

	for _, m := range board.PitchMarkers {
		drawMarker(svg, m)
	}

	if _, err := svg.WriteTo(w); err != nil {
		return fmt.Errorf("write board svg: %w", err)
	}
	return nil
}

func drawMarker(c canvas.Canvas, m marker.Marker) {
	strokeWidth := m.Radius * 0.15
	if m.State != marker.StateIdle {
		strokeWidth *= 2
	}
	c.Circle(m.Position, m.Radius, canvas.Style{
		Fill:        sideFill[m.Side],
		Stroke:      stateStroke[m.State],
		StrokeWidth: strokeWidth,
	})

	fontSize := m.Radius * 0.9
	c.Text(r2.Add(m.Position, r2.Vec{Y: fontSize / 3}), m.Label.Number, canvas.Style{
		Fill:     "#ffffff",
		FontSize: fontSize,
		Anchor:   "middle",
	})
	if m.Label.Captain {
		c.Text(r2.Add(m.Position, r2.Vec{X: m.Radius, Y: -m.Radius}), "C", canvas.Style{
			Fill:     "#ffeb3b",
			FontSize: fontSize * 0.7,
			Anchor:   "middle",
		})
	}
	c.Text(r2.Add(m.Position, r2.Vec{Y: m.Radius + fontSize}), m.Label.Name, canvas.Style{
		Fill:     "#ffffff",
		FontSize: fontSize * 0.7,
		Anchor:   "middle",
	})
}
