package formation

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func testSnapshot(minute int) Snapshot {
	mk := func(id string, num int) player.Player {
		return player.Player{ID: id, SquadNumber: num, Name: "Player " + id, Position: player.PositionMidfielder}
	}
	return Snapshot{
		Minute: minute,
		Slots: []Slot{
			{Player: mk("h1", 1), Side: SideHome, Pool: PoolPitch, Position: r2.Vec{X: 5, Y: 34}},
			{Player: mk("h2", 2), Side: SideHome, Pool: PoolPitch, Position: r2.Vec{X: 30, Y: 20}},
			{Player: mk("h12", 12), Side: SideHome, Pool: PoolBench, BenchIndex: 0},
			{Player: mk("h13", 13), Side: SideHome, Pool: PoolBench, BenchIndex: 1},
			{Player: mk("a1", 1), Side: SideAway, Pool: PoolPitch, Position: r2.Vec{X: 105, Y: 34}},
			{Player: mk("a12", 12), Side: SideAway, Pool: PoolBench, BenchIndex: 0},
		},
	}
}

func TestSnapshotSwap_PitchAndBenchExchangeMembership(t *testing.T) {
	t.Parallel()

	base := testSnapshot(0)
	before := base.PoolOf()

	next, err := base.Swap(Ref{PlayerID: "h2"}, Ref{PlayerID: "h12"})
	require.NoError(t, err)

	after := next.PoolOf()
	assert.Equal(t, PoolBench, after["h2"])
	assert.Equal(t, PoolPitch, after["h12"])
	for id, pool := range before {
		if id == "h2" || id == "h12" {
			continue
		}
		assert.Equal(t, pool, after[id], "player %s moved", id)
	}

	i, _ := next.Find("h12")
	assert.Equal(t, r2.Vec{X: 30, Y: 20}, next.Slots[i].Position)
	j, _ := next.Find("h2")
	assert.Equal(t, 0, next.Slots[j].BenchIndex)

	// receiver untouched
	assert.Equal(t, before, base.PoolOf())
}

func TestSnapshotSwap_PitchPitchTradesCoordinates(t *testing.T) {
	t.Parallel()

	next, err := testSnapshot(0).Swap(Ref{PlayerID: "h1"}, Ref{PlayerID: "h2"})
	require.NoError(t, err)

	i, _ := next.Find("h1")
	j, _ := next.Find("h2")
	assert.Equal(t, r2.Vec{X: 30, Y: 20}, next.Slots[i].Position)
	assert.Equal(t, r2.Vec{X: 5, Y: 34}, next.Slots[j].Position)
}

func TestSnapshotSwap_BenchBenchTradesOrder(t *testing.T) {
	t.Parallel()

	next, err := testSnapshot(0).Swap(Ref{PlayerID: "h12"}, Ref{PlayerID: "h13"})
	require.NoError(t, err)

	bench := next.Bench(SideHome)
	require.Len(t, bench, 2)
	assert.Equal(t, "h13", bench[0].Player.ID)
	assert.Equal(t, "h12", bench[1].Player.ID)
}

func TestSnapshotSwap_RejectsCrossTeamAndUnknown(t *testing.T) {
	t.Parallel()

	base := testSnapshot(0)

	got, err := base.Swap(Ref{PlayerID: "h1"}, Ref{PlayerID: "a1"})
	assert.True(t, errors.Is(err, ErrCrossTeamSwap))
	assert.Equal(t, base.PoolOf(), got.PoolOf())

	_, err = base.Swap(Ref{PlayerID: "h1"}, Ref{PlayerID: "ghost"})
	assert.True(t, errors.Is(err, ErrUnknownPlayer))

	_, err = base.Swap(Ref{PlayerID: "h1"}, Ref{PlayerID: "h1"})
	assert.True(t, errors.Is(err, ErrInvalidSlot))
}

func TestSnapshotValidate_DuplicatePlayerAcrossTeams(t *testing.T) {
	t.Parallel()

	s := testSnapshot(0)
	s.Slots[4].Player.ID = "h1"
	assert.True(t, errors.Is(s.Validate(), ErrDuplicatePlayer))
}

func TestHistoryAt_ResolvesLatestPrecedingSnapshot(t *testing.T) {
	t.Parallel()

	h := NewHistory(time.Now())
	for _, minute := range []int{60, 0, 23} {
		require.NoError(t, h.Append(testSnapshot(minute)))
	}

	tests := []struct {
		minute int
		want   int
	}{
		{minute: 0, want: 0},
		{minute: 22, want: 0},
		{minute: 23, want: 23},
		{minute: 45, want: 23},
		{minute: 90, want: 60},
		{minute: 150, want: 60},
		{minute: -5, want: 0},
	}
	for _, tc := range tests {
		got, ok := h.At(tc.minute)
		require.True(t, ok)
		assert.Equal(t, tc.want, got.Minute, "minute=%d", tc.minute)
	}
	assert.Equal(t, []int{0, 23, 60}, h.Minutes())
}

func TestHistoryAt_BeforeFirstSnapshotUsesFirst(t *testing.T) {
	t.Parallel()

	h := NewHistory(time.Now())
	_, ok := h.At(10)
	assert.False(t, ok)

	require.NoError(t, h.Append(testSnapshot(15)))
	got, ok := h.At(0)
	require.True(t, ok)
	assert.Equal(t, 15, got.Minute)
}

func TestHistoryAppend_RejectsDuplicateMinute(t *testing.T) {
	t.Parallel()

	h := NewHistory(time.Now())
	require.NoError(t, h.Append(testSnapshot(10)))
	err := h.Append(testSnapshot(10))
	assert.True(t, errors.Is(err, ErrDuplicateMinute))
	assert.Equal(t, 1, h.Len())

	err = h.Append(testSnapshot(91))
	assert.True(t, errors.Is(err, ErrMinuteOutOfRange))
}

func TestParseSideAndPool(t *testing.T) {
	t.Parallel()

	side, err := ParseSide(" Away ")
	require.NoError(t, err)
	assert.Equal(t, SideAway, side)
	_, err = ParseSide("neutral")
	assert.Error(t, err)

	pool, err := ParsePool("BENCH")
	require.NoError(t, err)
	assert.Equal(t, PoolBench, pool)
}
