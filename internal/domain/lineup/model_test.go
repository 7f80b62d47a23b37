package lineup

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/player"
)

func TestToSnapshot_PlacesStartersAndBench(t *testing.T) {
	l := MatchLineup{
		MatchID: "m1",
		Home: TeamSheet{
			Starters: []Starter{{Player: player.Player{ID: "h1", SquadNumber: 1, Name: "Keeper", Position: player.PositionGoalkeeper}, X: 5, Y: 34}},
			Bench:    []player.Player{{ID: "h12", SquadNumber: 12, Name: "Sub A", Position: player.PositionDefender}, {ID: "h13", SquadNumber: 13, Name: "Sub B", Position: player.PositionForward}},
		},
		Away: TeamSheet{
			Starters: []Starter{{Player: player.Player{ID: "a1", SquadNumber: 1, Name: "Other Keeper", Position: player.PositionGoalkeeper}, X: 105, Y: 34}},
		},
	}

	snap, err := l.ToSnapshot(0, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(snap.Slots))
	}
	bench := snap.Bench(formation.SideHome)
	if len(bench) != 2 || bench[0].Player.ID != "h12" || bench[1].BenchIndex != 1 {
		t.Fatalf("unexpected bench order: %+v", bench)
	}
	away := snap.Pitch(formation.SideAway)
	if len(away) != 1 || away[0].Position.X != 105 {
		t.Fatalf("unexpected away pitch: %+v", away)
	}
}

func TestToSnapshot_RejectsPlayerOnBothTeams(t *testing.T) {
	dup := player.Player{ID: "x", SquadNumber: 9, Name: "Twice", Position: player.PositionMidfielder}
	l := MatchLineup{
		MatchID: "m1",
		Home:    TeamSheet{Starters: []Starter{{Player: dup, X: 50, Y: 30}}},
		Away:    TeamSheet{Bench: []player.Player{dup}},
	}

	_, err := l.ToSnapshot(0, time.Now())
	if !errors.Is(err, formation.ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
}
