package formation

import "context"

// Sink receives committed snapshots so a parent save action can persist them.
type Sink interface {
	Publish(ctx context.Context, matchID string, snapshot Snapshot) error
}
