package analytics

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
)

var ErrInvalidZoneCount = crerr.New("zone count must be 2 or 3")

// Zone is a longitudinal slice of the pitch, [From, To) as fractions of the
// pitch length. The last zone is closed on the right.
type Zone struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
}

// Zones are read left to right, which is defensive to attacking for the
// team whose events are binned.
var (
	threeZones = []Zone{
		{Index: 0, Label: "defensive", From: 0, To: 0.2},
		{Index: 1, Label: "middle", From: 0.2, To: 0.8},
		{Index: 2, Label: "attacking", From: 0.8, To: 1},
	}
	twoZones = []Zone{
		{Index: 0, Label: "own_half", From: 0, To: 0.5},
		{Index: 1, Label: "opponent_half", From: 0.5, To: 1},
	}
)

// Layout partitions the pitch into zones.
type Layout struct {
	zones []Zone
}

// NewLayout fails fast on anything but 2 or 3 zones.
func NewLayout(count int) (Layout, error) {
	switch count {
	case 2:
		return Layout{zones: twoZones}, nil
	case 3:
		return Layout{zones: threeZones}, nil
	default:
		return Layout{}, crerr.Wrapf(ErrInvalidZoneCount, "got %d", count)
	}
}

// ValidateZoneCount is the configuration-time check for a zone count.
func ValidateZoneCount(count int) error {
	if _, err := NewLayout(count); err != nil {
		return fmt.Errorf("validate zone count: %w", err)
	}
	return nil
}

func (l Layout) Count() int {
	return len(l.zones)
}

func (l Layout) Zones() []Zone {
	return append([]Zone(nil), l.zones...)
}

// Assign returns the zone index for a pitch-space x coordinate. x is clamped
// onto the pitch, so every value lands in exactly one zone.
func (l Layout) Assign(x float64) int {
	frac := pitch.ClampPitch(vec(x, 0)).X / pitch.Length
	for _, z := range l.zones {
		if frac < z.To {
			return z.Index
		}
	}
	return l.zones[len(l.zones)-1].Index
}
