package formation

import (
	"fmt"
	"sort"
	"time"
)

// History is the time-ascending list of snapshots for one match. Within a
// session it only grows.
type History struct {
	CreatedAt time.Time
	snapshots []Snapshot
}

func NewHistory(createdAt time.Time) *History {
	return &History{CreatedAt: createdAt}
}

// Append inserts a snapshot keeping minute order. A minute can hold only one
// snapshot.
func (h *History) Append(snapshot Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	idx := sort.Search(len(h.snapshots), func(i int) bool {
		return h.snapshots[i].Minute >= snapshot.Minute
	})
	if idx < len(h.snapshots) && h.snapshots[idx].Minute == snapshot.Minute {
		return fmt.Errorf("%w: %d", ErrDuplicateMinute, snapshot.Minute)
	}

	stored := snapshot.Clone()
	h.snapshots = append(h.snapshots, Snapshot{})
	copy(h.snapshots[idx+1:], h.snapshots[idx:])
	h.snapshots[idx] = stored
	return nil
}

// At resolves the snapshot active at a minute: the latest one at or before
// it. The minute is clamped to the match range first, and a minute before the
// first snapshot resolves to the first snapshot.
func (h *History) At(minute int) (Snapshot, bool) {
	if len(h.snapshots) == 0 {
		return Snapshot{}, false
	}
	minute = ClampMinute(minute)

	idx := sort.Search(len(h.snapshots), func(i int) bool {
		return h.snapshots[i].Minute > minute
	})
	if idx == 0 {
		return h.snapshots[0].Clone(), true
	}
	return h.snapshots[idx-1].Clone(), true
}

// Minutes returns the distinct snapshot minutes in ascending order.
func (h *History) Minutes() []int {
	out := make([]int, 0, len(h.snapshots))
	for _, s := range h.snapshots {
		if n := len(out); n > 0 && out[n-1] == s.Minute {
			continue
		}
		out = append(out, s.Minute)
	}
	return out
}

func (h *History) Len() int {
	return len(h.snapshots)
}

func ClampMinute(minute int) int {
	if minute < FirstMinute {
		return FirstMinute
	}
	if minute > FinalMinute {
		return FinalMinute
	}
	return minute
}
