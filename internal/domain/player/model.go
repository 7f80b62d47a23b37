package player

import (
	"fmt"
	"strings"
)

// Position is the role code shown on a marker.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

func NormalizePosition(value string) Position {
	return Position(strings.ToUpper(strings.TrimSpace(value)))
}

// Stats are the per-match running numbers displayed next to a player.
type Stats struct {
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
	Minutes int `json:"minutes"`
}

// Player is one squad member as supplied by the lineup source. The board
// only reads it.
type Player struct {
	ID                 string
	SquadNumber        int
	Name               string
	Position           Position
	Captain            bool
	Stats              Stats
	PreferredPositions []Position
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required: %s", p.ID)
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position %q: %s", p.Position, p.ID)
	}
	if p.SquadNumber < 0 || p.SquadNumber > 99 {
		return fmt.Errorf("squad number out of range %d: %s", p.SquadNumber, p.ID)
	}
	if p.Stats.Goals < 0 || p.Stats.Assists < 0 || p.Stats.Minutes < 0 {
		return fmt.Errorf("player stats cannot be negative: %s", p.ID)
	}
	return nil
}

// Clone copies the slice fields so snapshots never share backing arrays.
func (p Player) Clone() Player {
	copied := p
	copied.PreferredPositions = append([]Position(nil), p.PreferredPositions...)
	return copied
}

// Prefers reports whether pos is one of the player's preferred positions.
func (p Player) Prefers(pos Position) bool {
	for _, candidate := range p.PreferredPositions {
		if candidate == pos {
			return true
		}
	}
	return p.Position == pos
}
