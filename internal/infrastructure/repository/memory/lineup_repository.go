package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tactical-board/internal/domain/lineup"
	"github.com/riskibarqy/tactical-board/internal/domain/player"
)

type LineupRepository struct {
	mu    sync.RWMutex
	items map[string]lineup.MatchLineup
}

func NewLineupRepository(seed ...lineup.MatchLineup) *LineupRepository {
	r := &LineupRepository{items: make(map[string]lineup.MatchLineup, len(seed))}
	for _, item := range seed {
		r.items[item.MatchID] = cloneLineup(item)
	}
	return r
}

func (r *LineupRepository) GetByMatch(_ context.Context, matchID string) (lineup.MatchLineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[matchID]
	if !ok {
		return lineup.MatchLineup{}, false, nil
	}
	return cloneLineup(item), true, nil
}

func (r *LineupRepository) Upsert(_ context.Context, item lineup.MatchLineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.MatchID] = cloneLineup(item)
	return nil
}

func cloneLineup(item lineup.MatchLineup) lineup.MatchLineup {
	copied := item
	copied.Home = cloneSheet(item.Home)
	copied.Away = cloneSheet(item.Away)
	return copied
}

func cloneSheet(sheet lineup.TeamSheet) lineup.TeamSheet {
	copied := sheet
	copied.Starters = make([]lineup.Starter, 0, len(sheet.Starters))
	for _, s := range sheet.Starters {
		s.Player = s.Player.Clone()
		copied.Starters = append(copied.Starters, s)
	}
	copied.Bench = make([]player.Player, 0, len(sheet.Bench))
	for _, p := range sheet.Bench {
		copied.Bench = append(copied.Bench, p.Clone())
	}
	return copied
}
