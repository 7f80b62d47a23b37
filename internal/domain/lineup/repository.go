package lineup

import "context"

// Repository exposes read access to match lineups.
type Repository interface {
	GetByMatch(ctx context.Context, matchID string) (MatchLineup, bool, error)
}
