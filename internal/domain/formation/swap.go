package formation

import "fmt"

// Swap exchanges the placement of two players of the same team and returns
// the resulting snapshot. The receiver is never modified, so a failed swap
// leaves the lineup exactly as it was.
//
// Placement covers pool membership, pitch coordinates and bench order:
// pitch<->pitch trades coordinates, bench<->bench trades list order and
// pitch<->bench moves each player into the other's slot.
func (s Snapshot) Swap(a, b Ref) (Snapshot, error) {
	if a.PlayerID == b.PlayerID {
		return s, fmt.Errorf("%w: cannot swap player %s with itself", ErrInvalidSlot, a.PlayerID)
	}

	ia, ok := s.Find(a.PlayerID)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownPlayer, a.PlayerID)
	}
	ib, ok := s.Find(b.PlayerID)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrUnknownPlayer, b.PlayerID)
	}

	slotA, slotB := s.Slots[ia], s.Slots[ib]
	if slotA.Side != slotB.Side {
		return s, fmt.Errorf("%w: %s (%s) and %s (%s)", ErrCrossTeamSwap, slotA.Player.ID, slotA.Side, slotB.Player.ID, slotB.Side)
	}

	next := s.Clone()
	next.Slots[ia].Pool, next.Slots[ib].Pool = slotB.Pool, slotA.Pool
	next.Slots[ia].Position, next.Slots[ib].Position = slotB.Position, slotA.Position
	next.Slots[ia].BenchIndex, next.Slots[ib].BenchIndex = slotB.BenchIndex, slotA.BenchIndex

	if err := next.Validate(); err != nil {
		return s, err
	}
	return next, nil
}
