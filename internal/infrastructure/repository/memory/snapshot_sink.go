package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
)

// SnapshotSink keeps every published snapshot per match. It stands in for
// the parent application's save handler.
type SnapshotSink struct {
	mu    sync.RWMutex
	items map[string][]formation.Snapshot
	err   error
}

func NewSnapshotSink() *SnapshotSink {
	return &SnapshotSink{items: make(map[string][]formation.Snapshot)}
}

func (s *SnapshotSink) Publish(_ context.Context, matchID string, snapshot formation.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.items[matchID] = append(s.items[matchID], snapshot.Clone())
	return nil
}

// FailWith makes subsequent publishes return err; nil restores success.
func (s *SnapshotSink) FailWith(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *SnapshotSink) Published(matchID string) []formation.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]formation.Snapshot, 0, len(s.items[matchID]))
	for _, snap := range s.items[matchID] {
		out = append(out, snap.Clone())
	}
	return out
}
