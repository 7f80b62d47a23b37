package analytics

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
	"github.com/riskibarqy/tactical-board/internal/domain/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func point(x, y float64) *r2.Vec {
	return &r2.Vec{X: x, Y: y}
}

func passes(starts ...*r2.Vec) matchevent.Dataset {
	d := make(matchevent.Dataset)
	for i, s := range starts {
		d.Add(matchevent.Event{
			ID:          string(rune('a' + i)),
			Category:    matchevent.CategoryPassing,
			Subcategory: "open_play",
			ActionType:  "short_pass",
			Start:       s,
			Side:        formation.SideHome,
		})
	}
	return d
}

func TestNewLayout_RejectsInvalidZoneCount(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 4} {
		_, err := NewDistributionBinner(n)
		if !errors.Is(err, ErrInvalidZoneCount) {
			t.Fatalf("zone count %d: expected ErrInvalidZoneCount, got %v", n, err)
		}
	}
	require.NoError(t, ValidateZoneCount(2))
	require.NoError(t, ValidateZoneCount(3))
}

func TestLayoutAssign_Boundaries(t *testing.T) {
	three, err := NewLayout(3)
	require.NoError(t, err)
	assert.Equal(t, 0, three.Assign(0))
	assert.Equal(t, 1, three.Assign(22))
	assert.Equal(t, 1, three.Assign(87.9))
	assert.Equal(t, 2, three.Assign(88))
	assert.Equal(t, 2, three.Assign(110))
	assert.Equal(t, 2, three.Assign(500))
	assert.Equal(t, 0, three.Assign(-5))

	two, err := NewLayout(2)
	require.NoError(t, err)
	assert.Equal(t, 0, two.Assign(54.9))
	assert.Equal(t, 1, two.Assign(55))
}

func TestBin_ThreeZoneScenario(t *testing.T) {
	b, err := NewDistributionBinner(3)
	require.NoError(t, err)

	got := b.Bin(passes(point(10, 34), point(60, 34), point(100, 34)), Query{Category: matchevent.CategoryPassing})

	require.Len(t, got.Zones, 3)
	for i, z := range got.Zones {
		assert.Equal(t, 1, z.Total, "zone %d", i)
		assert.InDelta(t, 33.3, z.Percentage, 1e-9, "zone %d", i)
	}
	assert.Equal(t, 3, got.Total)
	assert.Equal(t, 3, got.ActionTotals["short_pass"])
}

func TestBin_SkipsMissingGeometryAndKeepsCompleteness(t *testing.T) {
	b, err := NewDistributionBinner(2)
	require.NoError(t, err)

	got := b.Bin(passes(point(10, 34), nil, point(math.NaN(), 3), point(90, 10)), Query{Category: matchevent.CategoryPassing})

	sum := 0
	for _, z := range got.Zones {
		sum += z.Total
	}
	assert.Equal(t, got.Total, sum)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, 2, got.Skipped)
	assert.Equal(t, 50.0, got.Zones[0].Percentage)
}

func TestBin_NoEventsReportsZeroPercent(t *testing.T) {
	b, err := NewDistributionBinner(3)
	require.NoError(t, err)

	got := b.Bin(matchevent.Dataset{}, Query{Category: matchevent.CategoryShooting})
	for _, z := range got.Zones {
		if z.Percentage != 0 || math.IsNaN(z.Percentage) {
			t.Fatalf("expected 0%%, got %v", z.Percentage)
		}
	}
}

func TestBin_SubcategoryAndSideFilters(t *testing.T) {
	d := passes(point(10, 34))
	d.Add(matchevent.Event{ID: "x", Category: matchevent.CategoryPassing, Subcategory: "set_piece", ActionType: "cross", Start: point(100, 5), Side: formation.SideAway})

	b, err := NewDistributionBinner(3)
	require.NoError(t, err)

	all := b.Bin(d, Query{Category: matchevent.CategoryPassing})
	assert.Equal(t, 2, all.Total)

	setPiece := b.Bin(d, Query{Category: matchevent.CategoryPassing, Subcategories: []string{"set_piece"}})
	assert.Equal(t, 1, setPiece.Total)
	assert.Equal(t, 1, setPiece.Zones[2].Total)

	home := b.Bin(d, Query{Category: matchevent.CategoryPassing, Side: formation.SideHome})
	assert.Equal(t, 1, home.Total)
	assert.Equal(t, 1, home.Zones[0].Total)
}

func TestDistributionClone_DetachesMaps(t *testing.T) {
	b, err := NewDistributionBinner(3)
	require.NoError(t, err)
	orig := b.Bin(passes(point(10, 34), point(60, 34), point(100, 34)), Query{Category: matchevent.CategoryPassing})

	cp := orig.Clone()
	cp.Zones[0].Total = 99
	cp.Zones[0].Actions["short_pass"] = 99
	cp.ActionTotals["short_pass"] = 99

	assert.Equal(t, 1, orig.Zones[0].Total)
	assert.Equal(t, 1, orig.Zones[0].Actions["short_pass"])
	assert.Equal(t, 3, orig.ActionTotals["short_pass"])

	assert.Nil(t, Distribution{}.Clone().ActionTotals)
	assert.Nil(t, Distribution{}.Clone().Zones)
}

func TestVectorSetClone_DetachesVectors(t *testing.T) {
	orig := VectorSet{Vectors: []Vector{{EventID: "a", Start: r2.Vec{X: 1, Y: 2}}}}
	cp := orig.Clone()
	cp.Vectors[0].Start = r2.Vec{}

	assert.Equal(t, r2.Vec{X: 1, Y: 2}, orig.Vectors[0].Start)
	assert.Nil(t, VectorSet{}.Clone().Vectors)
}

func TestQueryKey_IsOrderIndependent(t *testing.T) {
	a := Query{Category: matchevent.CategoryPassing, Subcategories: []string{"b", "a"}}
	b := Query{Category: matchevent.CategoryPassing, Subcategories: []string{"a", "b"}}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Query{Category: matchevent.CategoryPassing}.Key())
}

func TestVectorBuilder_ScenarioAndExclusivity(t *testing.T) {
	d := make(matchevent.Dataset)
	d.Add(matchevent.Event{ID: "v1", Category: matchevent.CategoryPassing, Subcategory: "open_play", ActionType: "short_pass", Start: point(20, 10), End: point(40, 30)})
	d.Add(matchevent.Event{ID: "v2", Category: matchevent.CategoryPassing, Subcategory: "open_play", ActionType: "mystery", Start: point(50, 10), End: point(60, 30)})
	d.Add(matchevent.Event{ID: "no-end", Category: matchevent.CategoryPassing, Subcategory: "open_play", ActionType: "short_pass", Start: point(20, 10)})

	mapper := pitch.NewMapper(pitch.Dimensions{Width: 500, Height: 300})
	set := NewVectorBuilder(nil).Build(d, Query{Category: matchevent.CategoryPassing}, mapper)

	require.Len(t, set.Vectors, 2)
	assert.Equal(t, 1, set.Skipped)

	byID := map[string]Vector{}
	for _, v := range set.Vectors {
		byID[v.EventID] = v
	}
	_, leaked := byID["no-end"]
	assert.False(t, leaked)

	v := byID["v1"]
	assert.InDelta(t, 90.9, v.Start.X, 0.05)
	assert.InDelta(t, 44.1, v.Start.Y, 0.05)
	assert.InDelta(t, 181.8, v.End.X, 0.05)
	assert.InDelta(t, 132.4, v.End.Y, 0.05)
	assert.Equal(t, DefaultPalette().Lookup("short_pass").Color, v.Color)
	assert.Equal(t, FallbackStyle.Color, byID["v2"].Color)
}

func TestNewPalette_Validates(t *testing.T) {
	_, err := NewPalette(context.Background(), map[string]Style{"x": {Color: "green", Label: "X"}}, FallbackStyle)
	require.Error(t, err)

	_, err = NewPalette(context.Background(), map[string]Style{"x": {Color: "#00ff00"}}, FallbackStyle)
	require.Error(t, err)

	_, err = NewPalette(context.Background(), nil, Style{})
	require.Error(t, err)

	p, err := NewPalette(context.Background(), map[string]Style{"x": {Color: "#00ff00", Label: "X"}}, FallbackStyle)
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", p.Lookup("x").Color)
	assert.Equal(t, FallbackStyle, p.Lookup("unknown"))
}
