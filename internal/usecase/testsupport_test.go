package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/mbrandall/survivor-pool/internal/domain/catalog"
	"github.com/mbrandall/survivor-pool/internal/domain/pool"
	"github.com/mbrandall/survivor-pool/internal/infrastructure/configstore"
	"github.com/mbrandall/survivor-pool/internal/platform/cache"
	"github.com/mbrandall/survivor-pool/internal/platform/logging"
)

var testTeams = []string{
	"KC", "BUF", "BAL", "HOU", "CLE", "MIA", "PIT",
	"SF", "DAL", "DET", "TB", "PHI", "LAR", "GB",
}

// seqIDGen hands out id-1, id-2, ... deterministically.
type seqIDGen struct {
	count int
}

func (g *seqIDGen) NewID() (string, error) {
	g.count++
	return fmt.Sprintf("id-%d", g.count), nil
}

// fixedClock steps one second per call so created-at ordering is stable.
type fixedClock struct {
	current time.Time
}

func newFixedClock() *fixedClock {
	return &fixedClock{current: time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *fixedClock) Now() time.Time {
	now := c.current
	c.current = c.current.Add(time.Second)
	return now
}

func settingsClosed() pool.Settings {
	return pool.Settings{EntriesOpen: false}
}

func testPool() pool.Pool {
	byTeam := make(map[string][]pool.Player, len(testTeams))
	for _, team := range testTeams {
		byTeam[team] = []pool.Player{{Name: team + " Starter"}}
	}
	return pool.Pool{pool.PositionQB: byTeam}
}

// newConfiguredStore seeds a file store with a full 14-team configuration.
func newConfiguredStore(t *testing.T) *configstore.FileStore {
	t.Helper()

	store := configstore.NewFileStore(t.TempDir())
	ctx := context.Background()
	if err := store.SaveTeams(ctx, testTeams); err != nil {
		t.Fatalf("save teams: %v", err)
	}
	if err := store.SavePool(ctx, testPool()); err != nil {
		t.Fatalf("save pool: %v", err)
	}
	return store
}

func newTestCatalogService(t *testing.T, store *configstore.FileStore) *CatalogService {
	t.Helper()
	return NewCatalogService(store, store, cache.NewStore(time.Minute), logging.NewNop())
}

// quarterbackIDs returns the 14 QB catalog ids in playoff-team order.
func quarterbackIDs(t *testing.T, svc *CatalogService) []string {
	t.Helper()

	players, err := svc.ListPlayers(context.Background())
	if err != nil {
		t.Fatalf("list players: %v", err)
	}

	ids := make([]string, 0, len(testTeams))
	for _, p := range players {
		if p.Position == pool.PositionQB {
			ids = append(ids, p.ID)
		}
	}
	if len(ids) != len(testTeams) {
		t.Fatalf("expected %d quarterbacks, got %d", len(testTeams), len(ids))
	}
	return ids
}

func findPlayer(t *testing.T, svc *CatalogService, id string) catalog.Player {
	t.Helper()

	p, found, err := svc.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("find player %s: %v", id, err)
	}
	if !found {
		t.Fatalf("player %s not in catalog", id)
	}
	return p
}
