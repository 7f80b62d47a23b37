package timeline

import (
	"testing"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type manualClock struct {
	fn      func()
	starts  int
	stops   int
	running bool
}

func (c *manualClock) Every(_ time.Duration, fn func()) func() {
	c.fn = fn
	c.starts++
	c.running = true
	return func() {
		if c.running {
			c.running = false
			c.stops++
		}
	}
}

func (c *manualClock) advance(n int) {
	for i := 0; i < n && c.running; i++ {
		c.fn()
	}
}

func snapshotAt(minute int) formation.Snapshot {
	return formation.Snapshot{
		Minute: minute,
		Slots: []formation.Slot{
			{
				Player:   player.Player{ID: "h1", Name: "One", Position: player.PositionGoalkeeper},
				Side:     formation.SideHome,
				Pool:     formation.PoolPitch,
				Position: r2.Vec{X: 5, Y: 34},
			},
		},
	}
}

func newTimeline(t *testing.T, minutes ...int) (*Timeline, *manualClock) {
	t.Helper()

	history := formation.NewHistory(time.Now())
	for _, m := range minutes {
		require.NoError(t, history.Append(snapshotAt(m)))
	}
	clock := &manualClock{}
	tl, err := New(history, clock, time.Second)
	require.NoError(t, err)
	return tl, clock
}

func TestTimeline_JumpToClamps(t *testing.T) {
	t.Parallel()

	tl, _ := newTimeline(t, 0)
	assert.Equal(t, 90, tl.JumpTo(150).CurrentMinute)
	assert.Equal(t, 0, tl.JumpTo(-5).CurrentMinute)
}

func TestTimeline_ActiveSnapshotIsLatestPreceding(t *testing.T) {
	t.Parallel()

	tl, _ := newTimeline(t, 0, 23, 60)
	state := tl.JumpTo(45)
	assert.Equal(t, 23, state.ActiveMinute)
	assert.Equal(t, []int{0, 23, 60}, state.Markers)

	snap, ok := tl.ActiveSnapshot()
	require.True(t, ok)
	assert.Equal(t, 23, snap.Minute)

	other, ok := tl.SnapshotAt(75)
	require.True(t, ok)
	assert.Equal(t, 60, other.Minute)
	assert.Equal(t, 45, tl.State().CurrentMinute)
}

func TestTimeline_PlaybackAdvancesAndStopsAtFinalMinute(t *testing.T) {
	t.Parallel()

	tl, clock := newTimeline(t, 0)
	tl.JumpTo(85)

	state := tl.TogglePlay()
	require.True(t, state.IsPlaying)

	clock.advance(3)
	assert.Equal(t, 88, tl.State().CurrentMinute)

	clock.advance(10)
	state = tl.State()
	assert.Equal(t, 90, state.CurrentMinute)
	assert.False(t, state.IsPlaying)
	assert.Equal(t, 1, clock.stops)
}

func TestTimeline_JumpPausesPlayback(t *testing.T) {
	t.Parallel()

	tl, clock := newTimeline(t, 0)
	tl.TogglePlay()
	clock.advance(2)

	state := tl.JumpTo(40)
	assert.False(t, state.IsPlaying)
	assert.Equal(t, 40, state.CurrentMinute)
	assert.False(t, clock.running)
}

func TestTimeline_ToggleAtFinalMinuteRewinds(t *testing.T) {
	t.Parallel()

	tl, _ := newTimeline(t, 0)
	tl.JumpTo(90)
	state := tl.TogglePlay()
	assert.True(t, state.IsPlaying)
	assert.Equal(t, 0, state.CurrentMinute)

	state = tl.TogglePlay()
	assert.False(t, state.IsPlaying)
}

func TestTimeline_CloseReleasesClock(t *testing.T) {
	t.Parallel()

	tl, clock := newTimeline(t, 0)
	tl.TogglePlay()
	tl.Close()
	assert.False(t, clock.running)

	state := tl.TogglePlay()
	assert.False(t, state.IsPlaying)
	assert.Equal(t, 1, clock.starts)
}

// recordingClock keeps every registration so a tick that was already in
// flight when its registration was stopped can still be delivered.
type recordingClock struct {
	fns []func()
}

func (c *recordingClock) Every(_ time.Duration, fn func()) func() {
	c.fns = append(c.fns, fn)
	return func() {}
}

func TestTimeline_IgnoresTicksFromStoppedRegistration(t *testing.T) {
	t.Parallel()

	history := formation.NewHistory(time.Now())
	require.NoError(t, history.Append(snapshotAt(0)))
	clock := &recordingClock{}
	tl, err := New(history, clock, time.Second)
	require.NoError(t, err)

	tl.TogglePlay()
	tl.TogglePlay()
	tl.TogglePlay()
	require.Len(t, clock.fns, 2)

	clock.fns[0]()
	assert.Equal(t, 0, tl.State().CurrentMinute)

	clock.fns[1]()
	state := tl.State()
	assert.Equal(t, 1, state.CurrentMinute)
	assert.True(t, state.IsPlaying)

	tl.JumpTo(10)
	clock.fns[1]()
	assert.Equal(t, 10, tl.State().CurrentMinute)
}

func TestTimeline_CommitNotifiesListeners(t *testing.T) {
	t.Parallel()

	tl, _ := newTimeline(t, 0)
	var got []State
	release := tl.Subscribe(func(s State) { got = append(got, s) })

	_, err := tl.Commit(snapshotAt(30))
	require.NoError(t, err)
	_, err = tl.Commit(snapshotAt(30))
	require.ErrorIs(t, err, formation.ErrDuplicateMinute)

	require.Len(t, got, 1)
	assert.Equal(t, []int{0, 30}, got[0].Markers)

	release()
	tl.JumpTo(10)
	assert.Len(t, got, 1)
}

func TestNew_RejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := New(nil, nil, time.Second)
	assert.Error(t, err)
	_, err = New(formation.NewHistory(time.Now()), nil, 0)
	assert.Error(t, err)
}

func TestSystemClock_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	ticks := make(chan struct{}, 8)
	stop := SystemClock().Every(time.Millisecond, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatalf("ticker did not fire")
	}
	stop()
	stop()
}
