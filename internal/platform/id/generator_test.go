package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_ProducesParsableUniqueIDs(t *testing.T) {
	g := NewUUIDGenerator()
	a, err := g.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	b, _ := g.NewID()
	if a == b {
		t.Fatalf("expected unique ids, got %s twice", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("id is not a uuid: %v", err)
	}
}

func TestSequence(t *testing.T) {
	s := NewSequence("session")
	first, _ := s.NewID()
	second, _ := s.NewID()
	if first != "session-1" || second != "session-2" {
		t.Fatalf("unexpected sequence: %s %s", first, second)
	}
}
