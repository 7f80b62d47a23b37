// Package marker builds the presentation units for players on the pitch and
// on the bench. Visual state is derived from the current selection each time
// markers are built and never cached on the marker itself.
package marker

import (
	"fmt"
	"math"
	"strconv"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	"github.com/riskibarqy/tactical-board/internal/domain/player"
	"github.com/riskibarqy/tactical-board/internal/domain/selection"
	"gonum.org/v1/gonum/spatial/r2"
)

type VisualState string

const (
	StateIdle       VisualState = "idle"
	StateSelected   VisualState = "selected"
	StateSwapTarget VisualState = "swap_target"
)

const (
	radiusRatio = 0.022
	minRadius   = 8.0
)

// Label is the text shown with a marker.
type Label struct {
	Number    string `json:"number"`
	Name      string `json:"name"`
	Captain   bool   `json:"captain"`
	StatsLine string `json:"stats_line"`
}

// PressFunc receives pointer interactions on a marker.
type PressFunc func(p player.Player, side formation.Side, isBench bool)

type Marker struct {
	Player     player.Player
	Side       formation.Side
	Pool       formation.Pool
	Position   r2.Vec
	BenchIndex int
	Radius     float64
	State      VisualState
	Label      Label
}

func (m Marker) Ref() formation.Ref {
	return formation.Ref{PlayerID: m.Player.ID, Side: m.Side, Pool: m.Pool}
}

func (m Marker) IsBench() bool {
	return m.Pool == formation.PoolBench
}

// Press forwards the interaction to cb. The marker holds no state to mutate.
func (m Marker) Press(cb PressFunc) {
	if cb == nil {
		return
	}
	cb(m.Player, m.Side, m.IsBench())
}

// StateFor compares an entity's (id, team) against the selection.
func StateFor(ref formation.Ref, sel selection.Selection) VisualState {
	switch {
	case sel.IsTarget(ref):
		return StateSwapTarget
	case sel.Is(ref):
		return StateSelected
	default:
		return StateIdle
	}
}

// Radius is the marker size for a surface.
func Radius(dims pitch.Dimensions) float64 {
	return math.Max(minRadius, dims.Width*radiusRatio)
}

// PitchMarkers places every on-pitch slot of both teams in render space.
func PitchMarkers(snapshot formation.Snapshot, mapper pitch.Mapper, sel selection.Selection) []Marker {
	radius := Radius(mapper.Dimensions())
	out := make([]Marker, 0, 22)
	for _, side := range []formation.Side{formation.SideHome, formation.SideAway} {
		for _, slot := range snapshot.Pitch(side) {
			out = append(out, Marker{
				Player:   slot.Player,
				Side:     slot.Side,
				Pool:     slot.Pool,
				Position: mapper.ToPixel(slot.Position),
				Radius:   radius,
				State:    StateFor(slot.Ref(), sel),
				Label:    labelFor(slot.Player),
			})
		}
	}
	return out
}

// BenchMarkers lists one side's bench in bench order.
func BenchMarkers(snapshot formation.Snapshot, side formation.Side, sel selection.Selection) []Marker {
	bench := snapshot.Bench(side)
	out := make([]Marker, 0, len(bench))
	for _, slot := range bench {
		out = append(out, Marker{
			Player:     slot.Player,
			Side:       slot.Side,
			Pool:       slot.Pool,
			BenchIndex: slot.BenchIndex,
			State:      StateFor(slot.Ref(), sel),
			Label:      labelFor(slot.Player),
		})
	}
	return out
}

// HitTest returns the marker closest to px whose disc contains it.
func HitTest(markers []Marker, px r2.Vec) (Marker, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i, m := range markers {
		if m.IsBench() {
			continue
		}
		d := r2.Norm(r2.Sub(m.Position, px))
		if d <= m.Radius && d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Marker{}, false
	}
	return markers[best], true
}

func labelFor(p player.Player) Label {
	number := ""
	if p.SquadNumber > 0 {
		number = strconv.Itoa(p.SquadNumber)
	}
	return Label{
		Number:    number,
		Name:      p.Name,
		Captain:   p.Captain,
		StatsLine: fmt.Sprintf("%dG %dA %d'", p.Stats.Goals, p.Stats.Assists, p.Stats.Minutes),
	}
}
