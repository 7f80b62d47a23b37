package marker

import (
	"testing"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	"github.com/riskibarqy/tactical-board/internal/domain/player"
	"github.com/riskibarqy/tactical-board/internal/domain/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func boardSnapshot() formation.Snapshot {
	return formation.Snapshot{
		Slots: []formation.Slot{
			{Player: player.Player{ID: "h1", SquadNumber: 9, Name: "Nine", Position: player.PositionForward, Captain: true, Stats: player.Stats{Goals: 2, Minutes: 70}}, Side: formation.SideHome, Pool: formation.PoolPitch, Position: r2.Vec{X: 55, Y: 34}},
			{Player: player.Player{ID: "h12", Name: "Sub", Position: player.PositionDefender}, Side: formation.SideHome, Pool: formation.PoolBench, BenchIndex: 1},
			{Player: player.Player{ID: "h13", Name: "Sub Two", Position: player.PositionDefender}, Side: formation.SideHome, Pool: formation.PoolBench, BenchIndex: 0},
			{Player: player.Player{ID: "a1", Name: "Keeper", Position: player.PositionGoalkeeper}, Side: formation.SideAway, Pool: formation.PoolPitch, Position: r2.Vec{X: 105, Y: 34}},
		},
	}
}

func TestPitchMarkers_DerivesStateFromSelection(t *testing.T) {
	t.Parallel()

	mapper := pitch.NewMapper(pitch.Dimensions{Width: 1100, Height: 680})
	selected := formation.Ref{PlayerID: "h1", Side: formation.SideHome, Pool: formation.PoolPitch}

	markers := PitchMarkers(boardSnapshot(), mapper, selection.Selection{Selected: &selected})
	require.Len(t, markers, 2)
	assert.Equal(t, StateSelected, markers[0].State)
	assert.Equal(t, StateIdle, markers[1].State)
	assert.Equal(t, r2.Vec{X: 550, Y: 340}, markers[0].Position)
	assert.Equal(t, "9", markers[0].Label.Number)
	assert.True(t, markers[0].Label.Captain)
	assert.Equal(t, "2G 0A 70'", markers[0].Label.StatsLine)

	// Rebuilding with an empty selection resets the state.
	markers = PitchMarkers(boardSnapshot(), mapper, selection.Selection{})
	assert.Equal(t, StateIdle, markers[0].State)
}

func TestBenchMarkers_OrderedAndTargeted(t *testing.T) {
	t.Parallel()

	selected := formation.Ref{PlayerID: "h1", Side: formation.SideHome}
	target := formation.Ref{PlayerID: "h12", Side: formation.SideHome}
	bench := BenchMarkers(boardSnapshot(), formation.SideHome, selection.Selection{Selected: &selected, SwapTarget: &target})

	require.Len(t, bench, 2)
	assert.Equal(t, "h13", bench[0].Player.ID)
	assert.Equal(t, StateSwapTarget, bench[1].State)
	assert.True(t, bench[1].IsBench())
}

func TestMarkerPress_ForwardsWithoutMutation(t *testing.T) {
	t.Parallel()

	bench := BenchMarkers(boardSnapshot(), formation.SideHome, selection.Selection{})
	var gotID string
	var gotBench bool
	bench[0].Press(func(p player.Player, side formation.Side, isBench bool) {
		gotID = p.ID
		gotBench = isBench
	})
	assert.Equal(t, "h13", gotID)
	assert.True(t, gotBench)
	assert.Equal(t, StateIdle, bench[0].State)

	bench[0].Press(nil)
}

func TestHitTest(t *testing.T) {
	t.Parallel()

	mapper := pitch.NewMapper(pitch.Dimensions{Width: 1100, Height: 680})
	markers := PitchMarkers(boardSnapshot(), mapper, selection.Selection{})

	hit, ok := HitTest(markers, r2.Vec{X: 555, Y: 345})
	require.True(t, ok)
	assert.Equal(t, "h1", hit.Player.ID)

	_, ok = HitTest(markers, r2.Vec{X: 10, Y: 10})
	assert.False(t, ok)
}

func TestRadius_HasFloor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 8.0, Radius(pitch.Dimensions{Width: 100, Height: 62}))
	assert.InDelta(t, 22.0, Radius(pitch.Dimensions{Width: 1000, Height: 621}), 1e-9)
}
