package analytics

import (
	"sort"
	"strings"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"gonum.org/v1/gonum/spatial/r2"
)

// Query selects the events an analytics view is computed from. An empty
// Subcategories list enables every subcategory of the category; an empty
// Side keeps both teams.
type Query struct {
	Category      matchevent.Category
	Subcategories []string
	Side          formation.Side
}

func (q Query) enabled() map[string]struct{} {
	if len(q.Subcategories) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(q.Subcategories))
	for _, s := range q.Subcategories {
		out[strings.TrimSpace(s)] = struct{}{}
	}
	return out
}

// Key is a canonical string for the query, used to memoize results.
func (q Query) Key() string {
	subs := make([]string, 0, len(q.Subcategories))
	for _, s := range q.Subcategories {
		subs = append(subs, strings.TrimSpace(s))
	}
	sort.Strings(subs)
	return string(q.Category) + "|" + strings.Join(subs, ",") + "|" + string(q.Side)
}

// selectEvents applies the category, subcategory and side filters.
func selectEvents(dataset matchevent.Dataset, q Query) []matchevent.Event {
	enabled := q.enabled()
	all := dataset.Events(q.Category)
	out := make([]matchevent.Event, 0, len(all))
	for _, e := range all {
		if enabled != nil {
			if _, ok := enabled[e.Subcategory]; !ok {
				continue
			}
		}
		if q.Side != "" && e.Side != q.Side {
			continue
		}
		out = append(out, e)
	}
	return out
}

func vec(x, y float64) r2.Vec {
	return r2.Vec{X: x, Y: y}
}
