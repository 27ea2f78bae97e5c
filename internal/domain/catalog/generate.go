package catalog

import (
	"fmt"

	"github.com/mbrandall/survivor-pool/internal/domain/pool"
)

// Generate derives the canonical player list from the playoff team set and
// the player pool: QB, RB, WR, TE rows in pool order per team, followed by
// one synthesized kicker per playoff team. The function is pure; identical
// inputs produce an identical slice.
func Generate(teams []string, p pool.Pool) ([]Player, error) {
	if len(teams) != pool.PlayoffTeamCount {
		return nil, fmt.Errorf("%w: got %d playoff teams", ErrConfigIncomplete, len(teams))
	}
	if p == nil {
		return nil, fmt.Errorf("%w: player pool is missing", ErrConfigIncomplete)
	}
	if err := pool.Validate(p, teams); err != nil {
		return nil, err
	}

	out := make([]Player, 0, countPoolPlayers(p)+len(teams))
	seen := make(map[string]struct{}, cap(out))

	appendPlayer := func(player Player) error {
		if _, ok := seen[player.ID]; ok {
			return fmt.Errorf("duplicate player id %s in generated catalog", player.ID)
		}
		seen[player.ID] = struct{}{}
		out = append(out, player)
		return nil
	}

	for _, position := range pool.PoolPositions {
		byTeam := p[position]
		for _, team := range teams {
			for _, candidate := range byTeam[team] {
				player := Player{
					ID:       DerivePlayerID(position, team, candidate.Name),
					Name:     candidate.Name,
					Position: position,
					Team:     team,
				}
				if err := appendPlayer(player); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, team := range teams {
		kicker := Player{
			ID:       DerivePlayerID(pool.PositionK, team, team+"K"),
			Name:     team + "K",
			Position: pool.PositionK,
			Team:     team,
		}
		if err := appendPlayer(kicker); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func countPoolPlayers(p pool.Pool) int {
	total := 0
	for _, byTeam := range p {
		for _, players := range byTeam {
			total += len(players)
		}
	}
	return total
}
