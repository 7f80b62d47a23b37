package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/tactical-board/internal/domain/formation"
	"github.com/riskibarqy/tactical-board/internal/domain/matchevent"
)

func TestSeedLineups_ProduceValidSnapshots(t *testing.T) {
	repo := NewLineupRepository(SeedMatchLineups()...)

	item, ok, err := repo.GetByMatch(context.Background(), MatchIDDerby)
	if err != nil || !ok {
		t.Fatalf("expected seeded lineup, ok=%v err=%v", ok, err)
	}
	snap, err := item.ToSnapshot(0, time.Now())
	if err != nil {
		t.Fatalf("seeded lineup is invalid: %v", err)
	}
	if got := len(snap.Pitch(formation.SideHome)); got != 11 {
		t.Fatalf("expected 11 home starters, got %d", got)
	}
	if got := len(snap.Bench(formation.SideAway)); got != 5 {
		t.Fatalf("expected 5 away substitutes, got %d", got)
	}
}

func TestLineupRepository_ReturnsCopies(t *testing.T) {
	repo := NewLineupRepository(SeedMatchLineups()...)
	ctx := context.Background()

	first, _, _ := repo.GetByMatch(ctx, MatchIDDerby)
	first.Home.Starters[0].Player.Name = "changed"

	second, _, _ := repo.GetByMatch(ctx, MatchIDDerby)
	if second.Home.Starters[0].Player.Name == "changed" {
		t.Fatalf("repository leaked internal state")
	}

	if _, ok, err := repo.GetByMatch(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected miss without error, ok=%v err=%v", ok, err)
	}
}

func TestEventRepository_GetDataset(t *testing.T) {
	repo := NewEventRepository(SeedMatchEvents())

	dataset, err := repo.GetDataset(context.Background(), MatchIDDerby)
	if err != nil {
		t.Fatalf("get dataset: %v", err)
	}
	if dataset.Len() != len(derbyEvents) {
		t.Fatalf("expected %d events, got %d", len(derbyEvents), dataset.Len())
	}
	if len(dataset.Events(matchevent.CategoryCarries)) != 4 {
		t.Fatalf("unexpected carries: %d", len(dataset.Events(matchevent.CategoryCarries)))
	}

	empty, err := repo.GetDataset(context.Background(), "missing")
	if err != nil || empty.Len() != 0 {
		t.Fatalf("expected empty dataset, got %d err=%v", empty.Len(), err)
	}
}

func TestSnapshotSink(t *testing.T) {
	sink := NewSnapshotSink()
	ctx := context.Background()

	if err := sink.Publish(ctx, "m1", formation.Snapshot{Minute: 10}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	boom := errors.New("boom")
	sink.FailWith(boom)
	if err := sink.Publish(ctx, "m1", formation.Snapshot{Minute: 20}); !errors.Is(err, boom) {
		t.Fatalf("expected failure, got %v", err)
	}

	published := sink.Published("m1")
	if len(published) != 1 || published[0].Minute != 10 {
		t.Fatalf("unexpected published snapshots: %+v", published)
	}
}
