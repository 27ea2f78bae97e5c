package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/mbrandall/survivor-pool/internal/domain/catalog"
	"github.com/mbrandall/survivor-pool/internal/infrastructure/configstore"
)

func TestCatalogService_ListGeneratesOnFirstRead(t *testing.T) {
	store := newConfiguredStore(t)
	svc := newTestCatalogService(t, store)
	ctx := context.Background()

	// No players.csv written yet; the first read derives and persists it.
	players, err := svc.ListPlayers(ctx)
	if err != nil {
		t.Fatalf("list players: %v", err)
	}
	if len(players) != 28 {
		t.Fatalf("expected 28 players, got %d", len(players))
	}

	persisted, exists, err := store.ReadPlayers(ctx)
	if err != nil {
		t.Fatalf("read players file: %v", err)
	}
	if !exists {
		t.Fatalf("expected catalog file after first read")
	}
	if len(persisted) != len(players) {
		t.Fatalf("persisted %d players, served %d", len(persisted), len(players))
	}
}

func TestCatalogService_IncompleteConfig(t *testing.T) {
	store := configstore.NewFileStore(t.TempDir())
	svc := newTestCatalogService(t, store)

	_, err := svc.ListPlayers(context.Background())
	if !errors.Is(err, catalog.ErrConfigIncomplete) {
		t.Fatalf("expected ErrConfigIncomplete, got %v", err)
	}
}

func TestCatalogService_RegenerateIsIdempotent(t *testing.T) {
	store := newConfiguredStore(t)
	svc := newTestCatalogService(t, store)
	ctx := context.Background()

	first, err := svc.Regenerate(ctx)
	if err != nil {
		t.Fatalf("first regenerate: %v", err)
	}
	second, err := svc.Regenerate(ctx)
	if err != nil {
		t.Fatalf("second regenerate: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("regeneration changed size: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("row %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCatalogService_FindByID(t *testing.T) {
	store := newConfiguredStore(t)
	svc := newTestCatalogService(t, store)
	ctx := context.Background()

	p, found, err := svc.FindByID(ctx, "K_KC_KCK")
	if err != nil {
		t.Fatalf("find kicker: %v", err)
	}
	if !found || p.Team != "KC" || p.Name != "KCK" {
		t.Fatalf("unexpected kicker row: %+v found=%t", p, found)
	}

	_, found, err = svc.FindByID(ctx, "QB_KC_Nobody")
	if err != nil {
		t.Fatalf("find missing player: %v", err)
	}
	if found {
		t.Fatalf("expected missing player to be not found")
	}
}
