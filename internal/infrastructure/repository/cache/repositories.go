package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/lineup"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	basecache "github.com/riskibarqy/tactical-board/internal/platform/cache"
)

type LineupRepository struct {
	next  lineup.Repository
	cache *basecache.Store[cachedLineup]
}

func NewLineupRepository(next lineup.Repository, ttl time.Duration) *LineupRepository {
	return &LineupRepository{next: next, cache: basecache.NewStore[cachedLineup](ttl)}
}

func (r *LineupRepository) Stats() basecache.Stats {
	return r.cache.Stats()
}

func (r *LineupRepository) GetByMatch(ctx context.Context, matchID string) (lineup.MatchLineup, bool, error) {
	key := "lineup:match:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (cachedLineup, error) {
		item, exists, err := r.next.GetByMatch(ctx, matchID)
		if err != nil {
			return cachedLineup{}, err
		}
		return cachedLineup{value: item, exists: exists}, nil
	})
	if err != nil {
		return lineup.MatchLineup{}, false, err
	}

	return cloneLineup(v.value), v.exists, nil
}

type cachedLineup struct {
	value  lineup.MatchLineup
	exists bool
}

func cloneLineup(item lineup.MatchLineup) lineup.MatchLineup {
	out := item
	out.Home = cloneSheet(item.Home)
	out.Away = cloneSheet(item.Away)
	return out
}

func cloneSheet(sheet lineup.TeamSheet) lineup.TeamSheet {
	out := sheet
	out.Starters = append([]lineup.Starter(nil), sheet.Starters...)
	out.Bench = append(out.Bench[:0:0], sheet.Bench...)
	return out
}

type EventRepository struct {
	next  matchevent.Repository
	cache *basecache.Store[[]matchevent.Event]
}

func NewEventRepository(next matchevent.Repository, ttl time.Duration) *EventRepository {
	return &EventRepository{next: next, cache: basecache.NewStore[[]matchevent.Event](ttl)}
}

func (r *EventRepository) Stats() basecache.Stats {
	return r.cache.Stats()
}

// GetDataset rebuilds a fresh dataset from the cached events on every call
// so callers never share the underlying maps.
func (r *EventRepository) GetDataset(ctx context.Context, matchID string) (matchevent.Dataset, error) {
	key := "events:match:" + matchID
	events, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]matchevent.Event, error) {
		dataset, err := r.next.GetDataset(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return flatten(dataset), nil
	})
	if err != nil {
		return nil, err
	}

	return matchevent.FromEvents(events), nil
}

func flatten(dataset matchevent.Dataset) []matchevent.Event {
	out := make([]matchevent.Event, 0, dataset.Len())
	for _, category := range dataset.Categories() {
		out = append(out, dataset.Events(category)...)
	}
	return out
}
