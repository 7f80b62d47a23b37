package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_DrawsEveryMarking(t *testing.T) {
	t.Parallel()

	cmds := Render(DimensionsForWidth(467), DefaultColors())
	require.NotEmpty(t, cmds)
	assert.Equal(t, CommandClear, cmds[0].Kind)

	counts := CountElements(cmds)
	want := map[Element]int{
		ElementBackground:   1,
		ElementBoundary:     1,
		ElementHalfwayLine:  1,
		ElementCenterCircle: 1,
		ElementCenterSpot:   1,
		ElementPenaltyArea:  2,
		ElementGoalArea:     2,
		ElementPenaltySpot:  2,
		ElementPenaltyArc:   2,
		ElementCornerArc:    4,
		ElementGoal:         2,
	}
	assert.Equal(t, want, counts)
}

func TestRender_IsIdempotent(t *testing.T) {
	t.Parallel()

	dims := DimensionsForWidth(800)
	assert.Equal(t, Render(dims, DefaultColors()), Render(dims, DefaultColors()))
}

func TestRender_ScalesWithDimensions(t *testing.T) {
	t.Parallel()

	small := Render(DimensionsForWidth(467), DefaultColors())
	large := Render(DimensionsForWidth(934), DefaultColors())
	require.Equal(t, len(small), len(large))

	for i := range small {
		if small[i].Element != ElementPenaltyArea {
			continue
		}
		assert.InDelta(t, small[i].Size.X*2, large[i].Size.X, 1e-9)
		assert.InDelta(t, 467*0.2, small[i].Size.X, 1e-9)
	}
}

func TestRender_EmptySurfaceOnlyClears(t *testing.T) {
	t.Parallel()

	cmds := Render(Dimensions{}, Colors{})
	require.Len(t, cmds, 1)
	assert.Equal(t, DefaultColors().Fill, cmds[0].Color)
}
