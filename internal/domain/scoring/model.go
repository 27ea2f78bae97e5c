package scoring

import "time"

// PlayerScore holds one player's points per playoff round. A player with no
// row scores zero everywhere.
type PlayerScore struct {
	PlayerID   string
	Wildcard   int
	Divisional int
	Conference int
	SuperBowl  int
	UpdatedAt  time.Time
}

// Total is the season total across all four rounds.
func (s PlayerScore) Total() int {
	return s.Wildcard + s.Divisional + s.Conference + s.SuperBowl
}

// MapByPlayerID indexes scores for leaderboard lookups.
func MapByPlayerID(scores []PlayerScore) map[string]PlayerScore {
	out := make(map[string]PlayerScore, len(scores))
	for _, s := range scores {
		out[s.PlayerID] = s
	}
	return out
}
