package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/mbrandall/survivor-pool/internal/domain/pool"
)

// Player is one row of the generated canonical player list. Entry validation
// and score editing key off ID, which is derived deterministically from the
// pool so regeneration keeps ids stable.
type Player struct {
	ID       string
	Name     string
	Position pool.Position
	Team     string
}

// Store persists the generated catalog file.
type Store interface {
	WritePlayers(ctx context.Context, players []Player) error
	ReadPlayers(ctx context.Context) ([]Player, bool, error)
}

// ErrConfigIncomplete is returned when the playoff teams or the player pool
// have not been configured yet, or the team count is wrong.
var ErrConfigIncomplete = errors.New("playoff teams and player pool are not fully configured")

// DerivePlayerID builds the canonical id position_team_sanitizedName, where
// the name keeps only ASCII letters and digits.
func DerivePlayerID(position pool.Position, team, name string) string {
	return string(position) + "_" + team + "_" + sanitizeName(name)
}

func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
