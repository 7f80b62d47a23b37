package matchevent

import (
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"gonum.org/v1/gonum/spatial/r2"
)

type Category string

const (
	CategoryPassing  Category = "passing"
	CategoryShooting Category = "shooting"
	CategoryDuels    Category = "duels"
	CategoryCarries  Category = "carries"
)

func NormalizeCategory(value string) Category {
	return Category(strings.ToLower(strings.TrimSpace(value)))
}

// VectorCapable reports whether events of the category normally carry an
// end point.
func VectorCapable(c Category) bool {
	switch c {
	case CategoryPassing, CategoryShooting, CategoryCarries:
		return true
	default:
		return false
	}
}

// Event is one categorized match action in pitch space. Start and End are
// optional; consumers skip what they cannot place.
type Event struct {
	ID          string
	Category    Category
	Subcategory string
	ActionType  string
	Start       *r2.Vec
	End         *r2.Vec
	Timestamp   time.Duration
	Side        formation.Side
	PlayerID    string
}

// Minute is the match minute the event happened in.
func (e Event) Minute() int {
	return int(e.Timestamp / time.Minute)
}

// Dataset is the nested category -> subcategory -> action type -> events
// structure supplied by the event source. It is read-only once loaded.
type Dataset map[Category]map[string]map[string][]Event

func (d Dataset) Add(e Event) {
	subs, ok := d[e.Category]
	if !ok {
		subs = make(map[string]map[string][]Event)
		d[e.Category] = subs
	}
	actions, ok := subs[e.Subcategory]
	if !ok {
		actions = make(map[string][]Event)
		subs[e.Subcategory] = actions
	}
	actions[e.ActionType] = append(actions[e.ActionType], e)
}

func (d Dataset) Categories() []Category {
	out := make([]Category, 0, len(d))
	for c := range d {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (d Dataset) Subcategories(c Category) []string {
	return sortedKeys(d[c])
}

// Events flattens one category in a deterministic order: subcategory, then
// action type, then source order.
func (d Dataset) Events(c Category) []Event {
	subs := d[c]
	out := make([]Event, 0, 64)
	for _, sub := range sortedKeys(subs) {
		actions := subs[sub]
		for _, action := range sortedKeys(actions) {
			out = append(out, actions[action]...)
		}
	}
	return out
}

func (d Dataset) Len() int {
	n := 0
	for _, subs := range d {
		for _, actions := range subs {
			for _, events := range actions {
				n += len(events)
			}
		}
	}
	return n
}

func FromEvents(events []Event) Dataset {
	d := make(Dataset)
	for _, e := range events {
		d.Add(e)
	}
	return d
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
