package pool

import "context"

// Store describes configuration persistence needs from use cases. The bool
// result reports whether the underlying file exists yet.
type Store interface {
	LoadTeams(ctx context.Context) ([]string, bool, error)
	SaveTeams(ctx context.Context, teams []string) error
	LoadPool(ctx context.Context) (Pool, bool, error)
	SavePool(ctx context.Context, p Pool) error
	LoadSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
}
