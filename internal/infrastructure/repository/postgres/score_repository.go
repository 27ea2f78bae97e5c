package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mbrandall/survivor-pool/internal/domain/scoring"
)

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) Upsert(ctx context.Context, score scoring.PlayerScore) error {
	const upsertQuery = `
INSERT INTO player_scores (player_id, wildcard, divisional, conference, superbowl, updated_at)
VALUES (:player_id, :wildcard, :divisional, :conference, :superbowl, NOW())
ON CONFLICT (player_id)
DO UPDATE SET
    wildcard = EXCLUDED.wildcard,
    divisional = EXCLUDED.divisional,
    conference = EXCLUDED.conference,
    superbowl = EXCLUDED.superbowl,
    updated_at = NOW()`

	upsertSQL, upsertArgs, err := sqlx.Named(upsertQuery, map[string]any{
		"player_id":  score.PlayerID,
		"wildcard":   score.Wildcard,
		"divisional": score.Divisional,
		"conference": score.Conference,
		"superbowl":  score.SuperBowl,
	})
	if err != nil {
		return fmt.Errorf("bind upsert player score query: %w", err)
	}
	upsertSQL = r.db.Rebind(upsertSQL)

	if _, err := r.db.ExecContext(ctx, upsertSQL, upsertArgs...); err != nil {
		return fmt.Errorf("upsert player score player=%s: %w", score.PlayerID, err)
	}

	return nil
}

func (r *ScoreRepository) List(ctx context.Context) ([]scoring.PlayerScore, error) {
	const listQuery = `
SELECT player_id, wildcard, divisional, conference, superbowl, updated_at
FROM player_scores
ORDER BY player_id`

	var rows []struct {
		PlayerID   string    `db:"player_id"`
		Wildcard   int       `db:"wildcard"`
		Divisional int       `db:"divisional"`
		Conference int       `db:"conference"`
		SuperBowl  int       `db:"superbowl"`
		UpdatedAt  time.Time `db:"updated_at"`
	}
	if err := r.db.SelectContext(ctx, &rows, listQuery); err != nil {
		return nil, fmt.Errorf("list player scores: %w", err)
	}

	out := make([]scoring.PlayerScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.PlayerScore{
			PlayerID:   row.PlayerID,
			Wildcard:   row.Wildcard,
			Divisional: row.Divisional,
			Conference: row.Conference,
			SuperBowl:  row.SuperBowl,
			UpdatedAt:  row.UpdatedAt,
		})
	}

	return out, nil
}

func (r *ScoreRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM player_scores`); err != nil {
		return fmt.Errorf("delete all player scores: %w", err)
	}
	return nil
}
