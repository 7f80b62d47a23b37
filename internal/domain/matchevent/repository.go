package matchevent

import "context"

// Repository loads the event dataset of one match.
type Repository interface {
	GetDataset(ctx context.Context, matchID string) (Dataset, error)
}
