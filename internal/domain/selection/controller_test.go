package selection

import (
	"errors"
	"testing"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	homeStarter = formation.Ref{PlayerID: "h1", Side: formation.SideHome, Pool: formation.PoolPitch}
	homeSub     = formation.Ref{PlayerID: "h12", Side: formation.SideHome, Pool: formation.PoolBench}
	awayStarter = formation.Ref{PlayerID: "a1", Side: formation.SideAway, Pool: formation.PoolPitch}
)

func TestController_SelectTwiceToggles(t *testing.T) {
	t.Parallel()

	c := NewController(nil)
	c.Select(homeStarter)
	require.Equal(t, StateSelected, c.State())

	c.Select(homeStarter)
	assert.Equal(t, StateIdle, c.State())
	assert.Nil(t, c.Selection().Selected)
}

func TestController_SecondEntityTriggersSwap(t *testing.T) {
	t.Parallel()

	var swapped [][2]formation.Ref
	c := NewController(func(a, b formation.Ref) error {
		swapped = append(swapped, [2]formation.Ref{a, b})
		return nil
	})

	var transitions []Transition
	release := c.Subscribe(func(tr Transition) { transitions = append(transitions, tr) })
	defer release()

	c.Select(homeStarter)
	got := c.Select(homeSub)

	assert.Equal(t, StateIdle, got.State())
	require.Len(t, swapped, 1)
	assert.Equal(t, homeStarter, swapped[0][0])
	assert.Equal(t, homeSub, swapped[0][1])

	require.Len(t, transitions, 3)
	assert.Equal(t, StateSelected, transitions[0].To)
	assert.Equal(t, StateSwapPending, transitions[1].To)
	assert.Equal(t, homeSub, *transitions[1].Selection.SwapTarget)
	assert.Equal(t, StateIdle, transitions[2].To)
	assert.True(t, transitions[2].Swapped)
}

func TestController_FailedSwapStillClears(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	c := NewController(func(a, b formation.Ref) error { return errBoom })

	var last Transition
	c.Subscribe(func(tr Transition) { last = tr })

	c.Select(homeStarter)
	c.Select(homeSub)

	assert.Equal(t, StateIdle, c.State())
	assert.False(t, last.Swapped)
	assert.ErrorIs(t, last.Err, errBoom)
}

func TestController_OtherTeamReselects(t *testing.T) {
	t.Parallel()

	calls := 0
	c := NewController(func(a, b formation.Ref) error {
		calls++
		return nil
	})

	c.Select(homeStarter)
	got := c.Select(awayStarter)

	assert.Equal(t, 0, calls)
	require.NotNil(t, got.Selected)
	assert.Equal(t, awayStarter, *got.Selected)
	assert.Nil(t, got.SwapTarget)
}

func TestController_CancelAndStrayConfirm(t *testing.T) {
	t.Parallel()

	calls := 0
	c := NewController(func(a, b formation.Ref) error {
		calls++
		return nil
	})

	c.ConfirmSwap()
	assert.Equal(t, 0, calls)

	c.Select(homeStarter)
	c.ConfirmSwap()
	assert.Equal(t, 0, calls)
	assert.Equal(t, StateSelected, c.State())

	c.Cancel()
	assert.Equal(t, StateIdle, c.State())

	c.Select(formation.Ref{})
	assert.Equal(t, StateIdle, c.State())
}

func TestController_ReleaseIsIdempotent(t *testing.T) {
	t.Parallel()

	c := NewController(nil)
	var first, second int
	release := c.Subscribe(func(Transition) { first++ })
	c.Subscribe(func(Transition) { second++ })

	release()
	release()

	c.Select(homeStarter)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestSelection_IsAndIsTarget(t *testing.T) {
	t.Parallel()

	s := Selection{Selected: &homeStarter, SwapTarget: &homeSub}
	assert.True(t, s.Is(formation.Ref{PlayerID: "h1", Side: formation.SideHome}))
	assert.False(t, s.Is(awayStarter))
	assert.True(t, s.IsTarget(homeSub))
	assert.Equal(t, StateSwapPending, s.State())
}
