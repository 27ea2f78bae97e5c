package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mbrandall/survivor-pool/internal/domain/pool"
)

var playoffTeams = []string{
	"KC", "BUF", "BAL", "HOU", "CLE", "MIA", "PIT",
	"SF", "DAL", "DET", "TB", "PHI", "LAR", "GB",
}

func fixturePool() pool.Pool {
	p := pool.Pool{
		pool.PositionQB: {},
		pool.PositionRB: {"KC": {{Name: "Runner One"}, {Name: "Runner Two"}}},
		pool.PositionWR: {"BUF": {{Name: "J. St-Pierre Jr."}}},
		pool.PositionTE: {"SF": {{Name: "Tight End"}}},
	}
	for _, team := range playoffTeams {
		p[pool.PositionQB][team] = []pool.Player{{Name: team + " Starter"}}
	}
	return p
}

func TestGenerate(t *testing.T) {
	players, err := Generate(playoffTeams, fixturePool())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// 14 QBs + 2 RBs + 1 WR + 1 TE + 14 kickers.
	if got, want := len(players), 32; got != want {
		t.Fatalf("got %d players, want %d", got, want)
	}

	// Pool order is preserved: QBs in team order first.
	if players[0].ID != "QB_KC_KCStarter" {
		t.Fatalf("first player id = %s", players[0].ID)
	}

	// Punctuation and spaces are stripped from derived ids.
	var wr *Player
	for i := range players {
		if players[i].Position == pool.PositionWR {
			wr = &players[i]
			break
		}
	}
	if wr == nil {
		t.Fatal("no WR in generated catalog")
	}
	if wr.ID != "WR_BUF_JStPierreJr" {
		t.Fatalf("WR id = %s", wr.ID)
	}
	if wr.Name != "J. St-Pierre Jr." {
		t.Fatalf("WR name = %s", wr.Name)
	}

	// One synthesized kicker per playoff team at the tail.
	kickers := players[len(players)-len(playoffTeams):]
	for i, team := range playoffTeams {
		want := Player{
			ID:       "K_" + team + "_" + team + "K",
			Name:     team + "K",
			Position: pool.PositionK,
			Team:     team,
		}
		if kickers[i] != want {
			t.Fatalf("kicker[%d] = %+v, want %+v", i, kickers[i], want)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate(playoffTeams, fixturePool())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := Generate(playoffTeams, fixturePool())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different catalogs")
	}
}

func TestGenerate_RequiresFullConfiguration(t *testing.T) {
	if _, err := Generate(playoffTeams[:2], fixturePool()); !errors.Is(err, ErrConfigIncomplete) {
		t.Fatalf("Generate(2 teams) = %v, want ErrConfigIncomplete", err)
	}
	if _, err := Generate(playoffTeams, nil); !errors.Is(err, ErrConfigIncomplete) {
		t.Fatalf("Generate(nil pool) = %v, want ErrConfigIncomplete", err)
	}
}

func TestGenerate_RejectsInvalidPool(t *testing.T) {
	p := fixturePool()
	p[pool.PositionQB]["KC"] = append(p[pool.PositionQB]["KC"], pool.Player{Name: "Backup"})

	_, err := Generate(playoffTeams, p)
	if !errors.Is(err, pool.ErrInvalidPool) {
		t.Fatalf("Generate(two KC QBs) = %v, want ErrInvalidPool", err)
	}
}

func TestDerivePlayerID(t *testing.T) {
	if got := DerivePlayerID(pool.PositionRB, "DET", "D'Andre Swift III"); got != "RB_DET_DAndreSwiftIII" {
		t.Fatalf("DerivePlayerID = %s", got)
	}
}
