package formation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	"github.com/riskibarqy/tactical-board/internal/domain/player"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	FirstMinute = 0
	FinalMinute = 90
)

var (
	ErrInvalidSlot      = crerr.New("invalid formation slot")
	ErrDuplicatePlayer  = crerr.New("player appears in more than one slot")
	ErrUnknownPlayer    = crerr.New("player is not part of the snapshot")
	ErrDuplicateMinute  = crerr.New("snapshot already exists for minute")
	ErrMinuteOutOfRange = crerr.New("snapshot minute out of range")
	ErrCrossTeamSwap    = crerr.New("players belong to different teams")
)

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

func ParseSide(value string) (Side, error) {
	switch Side(strings.ToLower(strings.TrimSpace(value))) {
	case SideHome:
		return SideHome, nil
	case SideAway:
		return SideAway, nil
	default:
		return "", fmt.Errorf("%w: unknown side %q", ErrInvalidSlot, value)
	}
}

type Pool string

const (
	PoolPitch Pool = "pitch"
	PoolBench Pool = "bench"
)

func ParsePool(value string) (Pool, error) {
	switch Pool(strings.ToLower(strings.TrimSpace(value))) {
	case PoolPitch:
		return PoolPitch, nil
	case PoolBench:
		return PoolBench, nil
	default:
		return "", fmt.Errorf("%w: unknown pool %q", ErrInvalidSlot, value)
	}
}

// Ref identifies one player entity inside a snapshot.
type Ref struct {
	PlayerID string `json:"player_id"`
	Side     Side   `json:"side"`
	Pool     Pool   `json:"pool"`
}

func (r Ref) IsZero() bool {
	return r.PlayerID == ""
}

// Slot places a player on the pitch (Position in pitch space) or on the
// bench (BenchIndex in list order).
type Slot struct {
	Player     player.Player
	Side       Side
	Pool       Pool
	Position   r2.Vec
	BenchIndex int
}

func (s Slot) Ref() Ref {
	return Ref{PlayerID: s.Player.ID, Side: s.Side, Pool: s.Pool}
}

// Snapshot is the full assignment of both teams at one match minute.
type Snapshot struct {
	Minute    int
	Slots     []Slot
	CreatedAt time.Time
}

func (s Snapshot) Clone() Snapshot {
	copied := s
	copied.Slots = make([]Slot, len(s.Slots))
	for i, slot := range s.Slots {
		slot.Player = slot.Player.Clone()
		copied.Slots[i] = slot
	}
	return copied
}

// Validate enforces that every player occupies exactly one slot across both
// teams and that pitch positions are finite.
func (s Snapshot) Validate() error {
	if s.Minute < FirstMinute || s.Minute > FinalMinute {
		return fmt.Errorf("%w: %d", ErrMinuteOutOfRange, s.Minute)
	}

	seen := make(map[string]struct{}, len(s.Slots))
	benchIndexes := make(map[Side]map[int]struct{}, 2)
	for _, slot := range s.Slots {
		if slot.Side != SideHome && slot.Side != SideAway {
			return fmt.Errorf("%w: side %q for player %s", ErrInvalidSlot, slot.Side, slot.Player.ID)
		}
		if err := slot.Player.Validate(); err != nil {
			return crerr.Wrapf(ErrInvalidSlot, "%v", err)
		}
		if _, exists := seen[slot.Player.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayer, slot.Player.ID)
		}
		seen[slot.Player.ID] = struct{}{}

		switch slot.Pool {
		case PoolPitch:
			pos := slot.Position
			if !pitch.ValidPoint(&pos) {
				return fmt.Errorf("%w: non-finite position for player %s", ErrInvalidSlot, slot.Player.ID)
			}
		case PoolBench:
			if benchIndexes[slot.Side] == nil {
				benchIndexes[slot.Side] = make(map[int]struct{})
			}
			if _, exists := benchIndexes[slot.Side][slot.BenchIndex]; exists {
				return fmt.Errorf("%w: bench index %d used twice on %s bench", ErrInvalidSlot, slot.BenchIndex, slot.Side)
			}
			benchIndexes[slot.Side][slot.BenchIndex] = struct{}{}
		default:
			return fmt.Errorf("%w: pool %q for player %s", ErrInvalidSlot, slot.Pool, slot.Player.ID)
		}
	}
	return nil
}

// Find returns the index of a player's slot.
func (s Snapshot) Find(playerID string) (int, bool) {
	for i, slot := range s.Slots {
		if slot.Player.ID == playerID {
			return i, true
		}
	}
	return -1, false
}

// Pitch lists the on-pitch slots for one side in slot order.
func (s Snapshot) Pitch(side Side) []Slot {
	out := make([]Slot, 0, 11)
	for _, slot := range s.Slots {
		if slot.Side == side && slot.Pool == PoolPitch {
			out = append(out, slot)
		}
	}
	return out
}

// Bench lists the bench slots for one side ordered by bench index.
func (s Snapshot) Bench(side Side) []Slot {
	out := make([]Slot, 0, 9)
	for _, slot := range s.Slots {
		if slot.Side == side && slot.Pool == PoolBench {
			out = append(out, slot)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].BenchIndex < out[j].BenchIndex })
	return out
}

// PoolOf returns the pool every player sits in.
func (s Snapshot) PoolOf() map[string]Pool {
	out := make(map[string]Pool, len(s.Slots))
	for _, slot := range s.Slots {
		out[slot.Player.ID] = slot.Pool
	}
	return out
}
