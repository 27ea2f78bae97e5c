package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mbrandall/survivor-pool/internal/domain/entry"
	"github.com/mbrandall/survivor-pool/internal/domain/pool"
)

type EntryRepository struct {
	db *sqlx.DB
}

func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// CreateWithQuota counts, disambiguates and inserts inside one serializable
// transaction so two concurrent submissions for the same email cannot both
// pass the quota check.
func (r *EntryRepository) CreateWithQuota(ctx context.Context, e entry.Entry, maxPerEmail int) (entry.Entry, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return entry.Entry{}, fmt.Errorf("begin tx for entry create: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var count int
	if err := tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM entries WHERE email = $1`, e.Email); err != nil {
		return entry.Entry{}, fmt.Errorf("count entries for email: %w", err)
	}
	if count >= maxPerEmail {
		return entry.Entry{}, fmt.Errorf("%w: %s already has %d entries", entry.ErrQuotaExceeded, e.Email, count)
	}
	if count > 0 {
		e.Name = fmt.Sprintf("%s-%d", e.Name, count+1)
	}

	stored, err := insertEntry(ctx, tx, e)
	if err != nil {
		return entry.Entry{}, err
	}

	if err := tx.Commit(); err != nil {
		return entry.Entry{}, fmt.Errorf("commit entry create tx: %w", err)
	}

	return stored, nil
}

// Create persists an entry verbatim; used by the admin import path which
// bypasses the quota.
func (r *EntryRepository) Create(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("begin tx for entry import: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stored, err := insertEntry(ctx, tx, e)
	if err != nil {
		return entry.Entry{}, err
	}

	if err := tx.Commit(); err != nil {
		return entry.Entry{}, fmt.Errorf("commit entry import tx: %w", err)
	}

	return stored, nil
}

func insertEntry(ctx context.Context, tx *sqlx.Tx, e entry.Entry) (entry.Entry, error) {
	const insertEntryQuery = `
INSERT INTO entries (public_id, entry_name, email, paid, notes, created_at)
VALUES (:public_id, :entry_name, :email, :paid, :notes, :created_at)
RETURNING created_at`

	insertSQL, insertArgs, err := sqlx.Named(insertEntryQuery, map[string]any{
		"public_id":  e.ID,
		"entry_name": e.Name,
		"email":      e.Email,
		"paid":       e.Paid,
		"notes":      e.Notes,
		"created_at": e.CreatedAt,
	})
	if err != nil {
		return entry.Entry{}, fmt.Errorf("bind insert entry query: %w", err)
	}
	insertSQL = tx.Rebind(insertSQL)

	var createdAt time.Time
	if err := tx.GetContext(ctx, &createdAt, insertSQL, insertArgs...); err != nil {
		return entry.Entry{}, fmt.Errorf("insert entry: %w", err)
	}
	e.CreatedAt = createdAt

	const insertPickQuery = `
INSERT INTO entry_players (entry_public_id, player_id, player_name, position, team)
VALUES (:entry_public_id, :player_id, :player_name, :position, :team)`

	for _, pick := range e.Picks {
		pickSQL, pickArgs, err := sqlx.Named(insertPickQuery, map[string]any{
			"entry_public_id": e.ID,
			"player_id":       pick.PlayerID,
			"player_name":     pick.PlayerName,
			"position":        string(pick.Position),
			"team":            pick.Team,
		})
		if err != nil {
			return entry.Entry{}, fmt.Errorf("bind insert pick player=%s query: %w", pick.PlayerID, err)
		}
		pickSQL = tx.Rebind(pickSQL)
		if _, err := tx.ExecContext(ctx, pickSQL, pickArgs...); err != nil {
			return entry.Entry{}, fmt.Errorf("insert pick player=%s: %w", pick.PlayerID, err)
		}
	}

	return e, nil
}

func (r *EntryRepository) CountByEmail(ctx context.Context, email string) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM entries WHERE email = $1`, email); err != nil {
		return 0, fmt.Errorf("count entries by email: %w", err)
	}
	return count, nil
}

func (r *EntryRepository) List(ctx context.Context) ([]entry.Entry, error) {
	const entriesQuery = `
SELECT public_id, entry_name, email, paid, notes, created_at
FROM entries
ORDER BY created_at, id`

	var entryRows []struct {
		PublicID  string    `db:"public_id"`
		EntryName string    `db:"entry_name"`
		Email     string    `db:"email"`
		Paid      bool      `db:"paid"`
		Notes     string    `db:"notes"`
		CreatedAt time.Time `db:"created_at"`
	}
	if err := r.db.SelectContext(ctx, &entryRows, entriesQuery); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	const picksQuery = `
SELECT entry_public_id, player_id, player_name, position, team
FROM entry_players
ORDER BY id`

	var pickRows []struct {
		EntryPublicID string `db:"entry_public_id"`
		PlayerID      string `db:"player_id"`
		PlayerName    string `db:"player_name"`
		Position      string `db:"position"`
		Team          string `db:"team"`
	}
	if err := r.db.SelectContext(ctx, &pickRows, picksQuery); err != nil {
		return nil, fmt.Errorf("list entry picks: %w", err)
	}

	picksByEntry := make(map[string][]entry.Pick, len(entryRows))
	for _, p := range pickRows {
		picksByEntry[p.EntryPublicID] = append(picksByEntry[p.EntryPublicID], entry.Pick{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Position:   pool.Position(p.Position),
			Team:       p.Team,
		})
	}

	out := make([]entry.Entry, 0, len(entryRows))
	for _, row := range entryRows {
		out = append(out, entry.Entry{
			ID:        row.PublicID,
			Name:      row.EntryName,
			Email:     row.Email,
			Paid:      row.Paid,
			Notes:     row.Notes,
			Picks:     picksByEntry[row.PublicID],
			CreatedAt: row.CreatedAt,
		})
	}

	return out, nil
}

func (r *EntryRepository) UpdatePayment(ctx context.Context, entryID string, paid bool, notes string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE entries SET paid = $1, notes = $2 WHERE public_id = $3`, paid, notes, entryID)
	if err != nil {
		return false, fmt.Errorf("update entry payment: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read affected rows for entry payment: %w", err)
	}

	return affected > 0, nil
}

func (r *EntryRepository) DeleteAll(ctx context.Context) error {
	// entry_players rows go with their entries via ON DELETE CASCADE.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("delete all entries: %w", err)
	}
	return nil
}
