package pool

import (
	"errors"
	"fmt"
)

// Position is a roster slot in the player pool.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
	PositionK  Position = "K"
)

// PoolPositions is the fixed order pooled positions appear in the catalog.
// Kickers are synthesized per playoff team and never live in the pool.
var PoolPositions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}

// PlayoffTeamCount is the number of playoff teams a season needs before the
// catalog can be generated.
const PlayoffTeamCount = 14

// Player is one candidate in the admin-curated pool.
type Player struct {
	Name string `json:"name"`
}

// Pool groups candidate players by position, then team abbreviation. The
// slice order is the order players were configured in and is preserved by
// catalog generation.
type Pool map[Position]map[string][]Player

// Settings holds process-wide toggles. EntriesOpen defaults to true when no
// settings file exists yet.
type Settings struct {
	EntriesOpen bool `json:"entriesOpen"`
}

var (
	ErrTeamCount   = errors.New("playoff team list must contain exactly 14 teams")
	ErrInvalidPool = errors.New("player pool is invalid")
)

// ValidateTeams checks the playoff team set for size and duplicates.
func ValidateTeams(teams []string) error {
	if len(teams) != PlayoffTeamCount {
		return fmt.Errorf("%w: got %d", ErrTeamCount, len(teams))
	}

	seen := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		if team == "" {
			return fmt.Errorf("%w: empty team abbreviation", ErrTeamCount)
		}
		if _, ok := seen[team]; ok {
			return fmt.Errorf("%w: duplicate team %s", ErrTeamCount, team)
		}
		seen[team] = struct{}{}
	}

	return nil
}

// Validate checks the pool against the current playoff team set: every
// referenced team must be a playoff team and each team carries at most one
// quarterback (exactly one when quarterbacks are configured for it).
func Validate(p Pool, teams []string) error {
	teamSet := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		teamSet[team] = struct{}{}
	}

	for position, byTeam := range p {
		if !isPoolPosition(position) {
			return fmt.Errorf("%w: unknown position %s", ErrInvalidPool, position)
		}
		for team, players := range byTeam {
			if _, ok := teamSet[team]; !ok {
				return fmt.Errorf("%w: team %s is not a playoff team", ErrInvalidPool, team)
			}
			if position == PositionQB && len(players) != 1 {
				return fmt.Errorf("%w: Team %s must have exactly 1 QB", ErrInvalidPool, team)
			}
			for _, player := range players {
				if player.Name == "" {
					return fmt.Errorf("%w: empty player name for %s %s", ErrInvalidPool, position, team)
				}
			}
		}
	}

	return nil
}

func isPoolPosition(p Position) bool {
	for _, candidate := range PoolPositions {
		if p == candidate {
			return true
		}
	}
	return false
}
