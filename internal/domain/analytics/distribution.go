package analytics

import (
	"math"
	"sort"

	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
)

// ZoneTotal is the aggregate for one zone.
type ZoneTotal struct {
	Zone       Zone           `json:"zone"`
	Total      int            `json:"total"`
	Percentage float64        `json:"percentage"`
	Actions    map[string]int `json:"actions"`
}

// Distribution is the binned view of one query. Percentages are relative to
// Total, the number of events that landed in a zone.
type Distribution struct {
	Category     matchevent.Category `json:"category"`
	Zones        []ZoneTotal         `json:"zones"`
	Total        int                 `json:"total"`
	ActionTotals map[string]int      `json:"actionTotals"`
	Skipped      int                 `json:"skipped"`
}

// ActionTypes lists every action type that was binned, sorted.
func (d Distribution) ActionTypes() []string {
	out := make([]string, 0, len(d.ActionTotals))
	for k := range d.ActionTotals {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clone returns a deep copy.
func (d Distribution) Clone() Distribution {
	out := d
	out.ActionTotals = cloneCounts(d.ActionTotals)
	if d.Zones != nil {
		out.Zones = make([]ZoneTotal, len(d.Zones))
		for i, z := range d.Zones {
			z.Actions = cloneCounts(z.Actions)
			out.Zones[i] = z
		}
	}
	return out
}

func cloneCounts(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type DistributionBinner struct {
	layout Layout
}

func NewDistributionBinner(zoneCount int) (*DistributionBinner, error) {
	layout, err := NewLayout(zoneCount)
	if err != nil {
		return nil, err
	}
	return &DistributionBinner{layout: layout}, nil
}

func (b *DistributionBinner) Layout() Layout {
	return b.layout
}

// Bin recomputes the distribution from scratch. Events without a usable
// start point are counted in Skipped and nowhere else.
func (b *DistributionBinner) Bin(dataset matchevent.Dataset, q Query) Distribution {
	zones := b.layout.Zones()
	out := Distribution{
		Category:     q.Category,
		Zones:        make([]ZoneTotal, len(zones)),
		ActionTotals: make(map[string]int),
	}
	for i, z := range zones {
		out.Zones[i] = ZoneTotal{Zone: z, Actions: make(map[string]int)}
	}

	for _, e := range selectEvents(dataset, q) {
		if !pitch.ValidPoint(e.Start) {
			out.Skipped++
			continue
		}
		idx := b.layout.Assign(e.Start.X)
		out.Zones[idx].Total++
		out.Zones[idx].Actions[e.ActionType]++
		out.ActionTotals[e.ActionType]++
		out.Total++
	}

	for i := range out.Zones {
		out.Zones[i].Percentage = Percentage(out.Zones[i].Total, out.Total)
	}
	return out
}

// Percentage returns part/total as a percentage rounded to one decimal.
// A zero total yields 0.
func Percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
