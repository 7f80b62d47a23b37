package analytics

import (
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	"gonum.org/v1/gonum/spatial/r2"
)

// Vector is one directional event in render space.
type Vector struct {
	EventID     string `json:"eventId"`
	Start       r2.Vec `json:"start"`
	End         r2.Vec `json:"end"`
	Color       string `json:"color"`
	Subcategory string `json:"subcategory"`
	ActionType  string `json:"actionType"`
}

type VectorSet struct {
	Category   matchevent.Category `json:"category"`
	Dimensions pitch.Dimensions    `json:"dimensions"`
	Vectors    []Vector            `json:"vectors"`
	Skipped    int                 `json:"skipped"`
}

func (v VectorSet) Clone() VectorSet {
	out := v
	if v.Vectors != nil {
		out.Vectors = append(make([]Vector, 0, len(v.Vectors)), v.Vectors...)
	}
	return out
}

type VectorBuilder struct {
	palette *Palette
}

func NewVectorBuilder(palette *Palette) *VectorBuilder {
	if palette == nil {
		palette = DefaultPalette()
	}
	return &VectorBuilder{palette: palette}
}

// Build emits one vector per event that has both a start and an end point.
// Everything else is counted in Skipped.
func (b *VectorBuilder) Build(dataset matchevent.Dataset, q Query, mapper pitch.Mapper) VectorSet {
	events := selectEvents(dataset, q)
	out := VectorSet{
		Category:   q.Category,
		Dimensions: mapper.Dimensions(),
		Vectors:    make([]Vector, 0, len(events)),
	}
	for _, e := range events {
		if !pitch.ValidPoint(e.Start) || !pitch.ValidPoint(e.End) {
			out.Skipped++
			continue
		}
		out.Vectors = append(out.Vectors, Vector{
			EventID:     e.ID,
			Start:       mapper.ToPixel(*e.Start),
			End:         mapper.ToPixel(*e.End),
			Color:       b.palette.Lookup(e.ActionType).Color,
			Subcategory: e.Subcategory,
			ActionType:  e.ActionType,
		})
	}
	return out
}
