package scoring

import "context"

// Repository describes score persistence needs from use cases. Upsert
// replaces the stored row wholesale; replays with identical values are
// idempotent.
type Repository interface {
	Upsert(ctx context.Context, score PlayerScore) error
	List(ctx context.Context) ([]PlayerScore, error)
	DeleteAll(ctx context.Context) error
}
