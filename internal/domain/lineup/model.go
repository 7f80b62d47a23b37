package lineup

import (
	"fmt"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/player"
	"gonum.org/v1/gonum/spatial/r2"
)

// Starter is an on-pitch player with normalized pitch coordinates.
type Starter struct {
	Player player.Player
	X      float64
	Y      float64
}

// TeamSheet is one side's starting eleven and bench in listed order.
type TeamSheet struct {
	TeamID   string
	TeamName string
	Starters []Starter
	Bench    []player.Player
}

// MatchLineup is the kick-off lineup of both teams as supplied by the data
// source.
type MatchLineup struct {
	MatchID   string
	Home      TeamSheet
	Away      TeamSheet
	UpdatedAt time.Time
}

func (l MatchLineup) Sheet(side formation.Side) TeamSheet {
	if side == formation.SideAway {
		return l.Away
	}
	return l.Home
}

// ToSnapshot converts the lineup into the first formation snapshot of a
// session.
func (l MatchLineup) ToSnapshot(minute int, createdAt time.Time) (formation.Snapshot, error) {
	snapshot := formation.Snapshot{Minute: minute, CreatedAt: createdAt}
	for _, side := range []formation.Side{formation.SideHome, formation.SideAway} {
		sheet := l.Sheet(side)
		for _, s := range sheet.Starters {
			snapshot.Slots = append(snapshot.Slots, formation.Slot{
				Player:   s.Player.Clone(),
				Side:     side,
				Pool:     formation.PoolPitch,
				Position: r2.Vec{X: s.X, Y: s.Y},
			})
		}
		for i, p := range sheet.Bench {
			snapshot.Slots = append(snapshot.Slots, formation.Slot{
				Player:     p.Clone(),
				Side:       side,
				Pool:       formation.PoolBench,
				BenchIndex: i,
			})
		}
	}

	if err := snapshot.Validate(); err != nil {
		return formation.Snapshot{}, fmt.Errorf("lineup for match %s: %w", l.MatchID, err)
	}
	return snapshot, nil
}
