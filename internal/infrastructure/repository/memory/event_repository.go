package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"gonum.org/v1/gonum/spatial/r2"
)

type EventRepository struct {
	mu    sync.RWMutex
	items map[string][]matchevent.Event
}

func NewEventRepository(seed map[string][]matchevent.Event) *EventRepository {
	r := &EventRepository{items: make(map[string][]matchevent.Event, len(seed))}
	for matchID, events := range seed {
		r.items[matchID] = cloneEvents(events)
	}
	return r
}

// GetDataset returns an empty dataset for matches without events.
func (r *EventRepository) GetDataset(_ context.Context, matchID string) (matchevent.Dataset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return matchevent.FromEvents(cloneEvents(r.items[matchID])), nil
}

func (r *EventRepository) Append(_ context.Context, matchID string, events ...matchevent.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[matchID] = append(r.items[matchID], cloneEvents(events)...)
}

func cloneEvents(events []matchevent.Event) []matchevent.Event {
	out := make([]matchevent.Event, 0, len(events))
	for _, e := range events {
		e.Start = clonePoint(e.Start)
		e.End = clonePoint(e.End)
		out = append(out, e)
	}
	return out
}

func clonePoint(p *r2.Vec) *r2.Vec {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}
