package configstore

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mbrandall/survivor-pool/internal/domain/catalog"
	"github.com/mbrandall/survivor-pool/internal/domain/pool"
)

func TestFileStore_MissingFiles(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	if _, exists, err := store.LoadTeams(ctx); err != nil || exists {
		t.Fatalf("LoadTeams on empty dir: exists=%t err=%v", exists, err)
	}
	if _, exists, err := store.LoadPool(ctx); err != nil || exists {
		t.Fatalf("LoadPool on empty dir: exists=%t err=%v", exists, err)
	}
	if _, exists, err := store.ReadPlayers(ctx); err != nil || exists {
		t.Fatalf("ReadPlayers on empty dir: exists=%t err=%v", exists, err)
	}

	// No settings file means submissions are open.
	settings, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !settings.EntriesOpen {
		t.Fatal("default settings should have entries open")
	}
}

func TestFileStore_TeamsRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	teams := []string{"KC", "BUF", "SF"}
	if err := store.SaveTeams(ctx, teams); err != nil {
		t.Fatalf("SaveTeams: %v", err)
	}

	loaded, exists, err := store.LoadTeams(ctx)
	if err != nil || !exists {
		t.Fatalf("LoadTeams: exists=%t err=%v", exists, err)
	}
	if !reflect.DeepEqual(loaded, teams) {
		t.Fatalf("loaded teams = %v, want %v", loaded, teams)
	}
}

func TestFileStore_PoolRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	p := pool.Pool{
		pool.PositionQB: {"KC": {{Name: "Pat Star"}}},
		pool.PositionRB: {"SF": {{Name: "Runner One"}, {Name: "Runner Two"}}},
	}
	if err := store.SavePool(ctx, p); err != nil {
		t.Fatalf("SavePool: %v", err)
	}

	loaded, exists, err := store.LoadPool(ctx)
	if err != nil || !exists {
		t.Fatalf("LoadPool: exists=%t err=%v", exists, err)
	}
	if !reflect.DeepEqual(loaded, p) {
		t.Fatalf("loaded pool = %+v, want %+v", loaded, p)
	}
}

func TestFileStore_SettingsRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	if err := store.SaveSettings(ctx, pool.Settings{EntriesOpen: false}); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	settings, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if settings.EntriesOpen {
		t.Fatal("entries should be closed after SaveSettings(false)")
	}
}

func TestFileStore_PlayersRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()

	players := []catalog.Player{
		{ID: "QB_KC_PatStar", Name: "Pat Star", Position: pool.PositionQB, Team: "KC"},
		{ID: "K_GB_GBK", Name: "GBK", Position: pool.PositionK, Team: "GB"},
	}
	if err := store.WritePlayers(ctx, players); err != nil {
		t.Fatalf("WritePlayers: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "players.csv"))
	if err != nil {
		t.Fatalf("read players.csv: %v", err)
	}
	if got := string(raw); got != catalog.Encode(players) {
		t.Fatalf("players.csv = %q", got)
	}

	loaded, exists, err := store.ReadPlayers(ctx)
	if err != nil || !exists {
		t.Fatalf("ReadPlayers: exists=%t err=%v", exists, err)
	}
	if !reflect.DeepEqual(loaded, players) {
		t.Fatalf("loaded players = %+v, want %+v", loaded, players)
	}
}

func TestFileStore_CorruptJSON(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "teams.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, _, err := store.LoadTeams(ctx); err == nil {
		t.Fatal("LoadTeams accepted corrupt JSON")
	}
}
