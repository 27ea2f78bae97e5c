package usecase

import (
	"context"
	"fmt"

	"github.com/mbrandall/survivor-pool/internal/domain/catalog"
	"github.com/mbrandall/survivor-pool/internal/domain/pool"
	"github.com/mbrandall/survivor-pool/internal/platform/cache"
	"github.com/mbrandall/survivor-pool/internal/platform/logging"
)

const catalogCacheKey = "catalog:players"

// CatalogService owns the derived player catalog: it regenerates the file
// after configuration changes and serves reads through the TTL cache.
type CatalogService struct {
	poolStore    pool.Store
	catalogStore catalog.Store
	cache        *cache.Store
	logger       *logging.Logger
}

func NewCatalogService(
	poolStore pool.Store,
	catalogStore catalog.Store,
	cacheStore *cache.Store,
	logger *logging.Logger,
) *CatalogService {
	if logger == nil {
		logger = logging.Default()
	}

	return &CatalogService{
		poolStore:    poolStore,
		catalogStore: catalogStore,
		cache:        cacheStore,
		logger:       logger,
	}
}

// ListPlayers returns the current catalog. When no catalog file exists yet it
// tries to generate one from the stored configuration; an incomplete
// configuration surfaces catalog.ErrConfigIncomplete.
func (s *CatalogService) ListPlayers(ctx context.Context) ([]catalog.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.ListPlayers")
	defer span.End()

	if s.cache == nil {
		return s.loadPlayers(ctx)
	}

	value, err := s.cache.GetOrLoad(ctx, catalogCacheKey, func(ctx context.Context) (any, error) {
		return s.loadPlayers(ctx)
	})
	if err != nil {
		return nil, err
	}

	players, ok := value.([]catalog.Player)
	if !ok {
		return nil, fmt.Errorf("unexpected catalog cache value %T", value)
	}

	return players, nil
}

// Regenerate derives the catalog from the stored teams and pool, rewrites the
// catalog file and invalidates the cache. Called after every teams or pool
// mutation.
func (s *CatalogService) Regenerate(ctx context.Context) ([]catalog.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.Regenerate")
	defer span.End()

	players, err := s.generate(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.catalogStore.WritePlayers(ctx, players); err != nil {
		return nil, fmt.Errorf("write catalog: %w", err)
	}
	s.invalidate(ctx)

	s.logger.InfoContext(ctx, "catalog regenerated", "players", len(players))
	return players, nil
}

// FindByID resolves one catalog row for submission-time validation.
func (s *CatalogService) FindByID(ctx context.Context, playerID string) (catalog.Player, bool, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return catalog.Player{}, false, err
	}

	for _, p := range players {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return catalog.Player{}, false, nil
}

func (s *CatalogService) loadPlayers(ctx context.Context) ([]catalog.Player, error) {
	players, exists, err := s.catalogStore.ReadPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	if exists {
		return players, nil
	}

	players, err = s.generate(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.catalogStore.WritePlayers(ctx, players); err != nil {
		return nil, fmt.Errorf("write catalog: %w", err)
	}

	return players, nil
}

func (s *CatalogService) generate(ctx context.Context) ([]catalog.Player, error) {
	teams, teamsExist, err := s.poolStore.LoadTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	if !teamsExist {
		return nil, fmt.Errorf("%w: playoff teams are not set", catalog.ErrConfigIncomplete)
	}

	playerPool, poolExists, err := s.poolStore.LoadPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pool: %w", err)
	}
	if !poolExists {
		return nil, fmt.Errorf("%w: player pool is not set", catalog.ErrConfigIncomplete)
	}

	players, err := catalog.Generate(teams, playerPool)
	if err != nil {
		return nil, fmt.Errorf("generate catalog: %w", err)
	}

	return players, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Delete(ctx, catalogCacheKey)
	}
}
