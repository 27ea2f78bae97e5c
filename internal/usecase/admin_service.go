package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mbrandall/survivor-pool/internal/domain/catalog"
	"github.com/mbrandall/survivor-pool/internal/domain/entry"
	"github.com/mbrandall/survivor-pool/internal/domain/pool"
	"github.com/mbrandall/survivor-pool/internal/domain/scoring"
	idgen "github.com/mbrandall/survivor-pool/internal/platform/id"
	"github.com/mbrandall/survivor-pool/internal/platform/logging"
	"github.com/panjf2000/ants/v2"
	"github.com/valyala/bytebufferpool"
)

// ImportPick is one pick inside a bulk-imported entry. The player id is
// never trusted from the import payload; it is re-derived by resolving
// name+position+team against the current catalog.
type ImportPick struct {
	Name     string
	Position string
	Team     string
}

// ImportEntry is one entry inside a bulk import payload.
type ImportEntry struct {
	Name      string
	Email     string
	Paid      bool
	Notes     string
	CreatedAt time.Time
	Picks     []ImportPick
}

// ImportResult reports what a completed bulk import persisted.
type ImportResult struct {
	Imported int
}

type AdminService struct {
	poolStore  pool.Store
	catalog    *CatalogService
	entryRepo  entry.Repository
	scoreRepo  scoring.Repository
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
	maxWorkers int
}

func NewAdminService(
	poolStore pool.Store,
	catalogSvc *CatalogService,
	entryRepo entry.Repository,
	scoreRepo scoring.Repository,
	idGen idgen.Generator,
	maxWorkers int,
	logger *logging.Logger,
) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	return &AdminService{
		poolStore:  poolStore,
		catalog:    catalogSvc,
		entryRepo:  entryRepo,
		scoreRepo:  scoreRepo,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
		maxWorkers: maxWorkers,
	}
}

// GetTeams returns the configured playoff teams, nil when not set yet.
func (s *AdminService) GetTeams(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.GetTeams")
	defer span.End()

	teams, _, err := s.poolStore.LoadTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("load teams: %w", err)
	}
	return teams, nil
}

// SetTeams replaces the playoff team set and regenerates the catalog when a
// player pool is already configured.
func (s *AdminService) SetTeams(ctx context.Context, teams []string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SetTeams")
	defer span.End()

	cleaned := make([]string, 0, len(teams))
	for _, team := range teams {
		cleaned = append(cleaned, strings.TrimSpace(team))
	}
	if err := pool.ValidateTeams(cleaned); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.poolStore.SaveTeams(ctx, cleaned); err != nil {
		return fmt.Errorf("save teams: %w", err)
	}

	return s.regenerateIfConfigured(ctx)
}

// GetPool returns the configured player pool, nil when not set yet.
func (s *AdminService) GetPool(ctx context.Context) (pool.Pool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.GetPool")
	defer span.End()

	playerPool, _, err := s.poolStore.LoadPool(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pool: %w", err)
	}
	return playerPool, nil
}

// SetPool replaces the player pool and regenerates the catalog. The playoff
// teams must already be configured so the pool can be validated against them.
func (s *AdminService) SetPool(ctx context.Context, playerPool pool.Pool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SetPool")
	defer span.End()

	teams, exists, err := s.poolStore.LoadTeams(ctx)
	if err != nil {
		return fmt.Errorf("load teams: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: set playoff teams before the player pool", catalog.ErrConfigIncomplete)
	}
	if err := pool.Validate(playerPool, teams); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.poolStore.SavePool(ctx, playerPool); err != nil {
		return fmt.Errorf("save pool: %w", err)
	}

	if _, err := s.catalog.Regenerate(ctx); err != nil {
		return err
	}
	return nil
}

// SetEntriesOpen toggles the submission gate.
func (s *AdminService) SetEntriesOpen(ctx context.Context, open bool) (pool.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SetEntriesOpen")
	defer span.End()

	settings := pool.Settings{EntriesOpen: open}
	if err := s.poolStore.SaveSettings(ctx, settings); err != nil {
		return pool.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	s.logger.InfoContext(ctx, "entry status changed", "entries_open", open)
	return settings, nil
}

// UpdateEntry edits the admin-owned paid/notes fields of one entry.
func (s *AdminService) UpdateEntry(ctx context.Context, entryID string, paid bool, notes string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.UpdateEntry")
	defer span.End()

	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return fmt.Errorf("%w: entry id is required", ErrInvalidInput)
	}

	updated, err := s.entryRepo.UpdatePayment(ctx, entryID, paid, notes)
	if err != nil {
		return fmt.Errorf("update entry payment: %w", err)
	}
	if !updated {
		return fmt.Errorf("%w: entry %s", ErrNotFound, entryID)
	}
	return nil
}

// ListScores returns every recorded player score.
func (s *AdminService) ListScores(ctx context.Context) ([]scoring.PlayerScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ListScores")
	defer span.End()

	scores, err := s.scoreRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return scores, nil
}

// RecordScore upserts one player's per-round scores, replacing any stored
// row wholesale. The upsert is unconditional: picks are denormalized at
// submission time, so ids dropped by a later catalog regeneration must stay
// scoreable.
func (s *AdminService) RecordScore(ctx context.Context, score scoring.PlayerScore) (scoring.PlayerScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.RecordScore")
	defer span.End()

	score.PlayerID = strings.TrimSpace(score.PlayerID)
	if score.PlayerID == "" {
		return scoring.PlayerScore{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	if _, found, err := s.catalog.FindByID(ctx, score.PlayerID); err == nil && !found {
		s.logger.WarnContext(ctx, "score recorded for player missing from catalog", "player_id", score.PlayerID)
	}

	score.UpdatedAt = s.now().UTC()
	if err := s.scoreRepo.Upsert(ctx, score); err != nil {
		return scoring.PlayerScore{}, fmt.Errorf("upsert score: %w", err)
	}

	return score, nil
}

// Reset wipes all entries, picks and scores for a new season. The stored
// configuration (teams, pool, settings, catalog) is kept.
func (s *AdminService) Reset(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.Reset")
	defer span.End()

	if err := s.entryRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	if err := s.scoreRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete scores: %w", err)
	}

	s.logger.WarnContext(ctx, "season reset: entries and scores wiped")
	return nil
}

// Import bulk-loads entries, typically restored from an export of a previous
// deployment. Picks are resolved against the current catalog concurrently;
// any unresolved pick fails the whole import before anything is persisted.
// Import bypasses the per-email quota and name disambiguation.
func (s *AdminService) Import(ctx context.Context, imports []ImportEntry) (ImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.Import")
	defer span.End()

	if len(imports) == 0 {
		return ImportResult{}, fmt.Errorf("%w: import payload is empty", ErrInvalidInput)
	}

	players, err := s.catalog.ListPlayers(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	index := newCatalogIndex(players)

	resolved := make([][]entry.Pick, len(imports))
	errs := make([]error, len(imports))

	workers, err := ants.NewPool(s.maxWorkers)
	if err != nil {
		return ImportResult{}, fmt.Errorf("create import worker pool: %w", err)
	}
	defer workers.Release()

	var wg sync.WaitGroup
	for i := range imports {
		i := i
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			resolved[i], errs[i] = resolveImportPicks(imports[i], index)
		}); err != nil {
			wg.Done()
			return ImportResult{}, fmt.Errorf("submit import task: %w", err)
		}
	}
	wg.Wait()

	for i, resolveErr := range errs {
		if resolveErr != nil {
			return ImportResult{}, fmt.Errorf("entry %q: %w", imports[i].Name, resolveErr)
		}
	}

	now := s.now().UTC()
	for i, imported := range imports {
		publicID, err := s.idGen.NewID()
		if err != nil {
			return ImportResult{}, fmt.Errorf("generate entry id: %w", err)
		}

		createdAt := imported.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		candidate := entry.Entry{
			ID:        publicID,
			Name:      strings.TrimSpace(imported.Name),
			Email:     strings.ToLower(strings.TrimSpace(imported.Email)),
			Paid:      imported.Paid,
			Notes:     imported.Notes,
			Picks:     resolved[i],
			CreatedAt: createdAt.UTC(),
		}
		if err := candidate.ValidateBasic(); err != nil {
			return ImportResult{}, fmt.Errorf("%w: entry %q: %v", ErrInvalidInput, imported.Name, err)
		}

		if _, err := s.entryRepo.Create(ctx, candidate); err != nil {
			return ImportResult{}, fmt.Errorf("persist imported entry %q: %w", imported.Name, err)
		}
	}

	s.logger.InfoContext(ctx, "entries imported", "count", len(imports))
	return ImportResult{Imported: len(imports)}, nil
}

// ExportCSV renders every entry as CSV with header
// "Entry Name,Email,Paid,Notes,Created At". All fields are double-quoted and
// embedded quotes are doubled; created-at is UTC RFC3339.
func (s *AdminService) ExportCSV(ctx context.Context) ([]byte, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.ExportCSV")
	defer span.End()

	entries, err := s.entryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("Entry Name,Email,Paid,Notes,Created At\n")
	for _, e := range entries {
		writeCSVField(buf, e.Name)
		_ = buf.WriteByte(',')
		writeCSVField(buf, e.Email)
		_ = buf.WriteByte(',')
		writeCSVField(buf, fmt.Sprintf("%t", e.Paid))
		_ = buf.WriteByte(',')
		writeCSVField(buf, e.Notes)
		_ = buf.WriteByte(',')
		writeCSVField(buf, e.CreatedAt.UTC().Format(time.RFC3339))
		_ = buf.WriteByte('\n')
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

func writeCSVField(buf *bytebufferpool.ByteBuffer, value string) {
	_ = buf.WriteByte('"')
	_, _ = buf.WriteString(strings.ReplaceAll(value, `"`, `""`))
	_ = buf.WriteByte('"')
}

func (s *AdminService) regenerateIfConfigured(ctx context.Context) error {
	_, err := s.catalog.Regenerate(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, catalog.ErrConfigIncomplete) {
		// Pool not set yet; the catalog is regenerated once it arrives.
		s.logger.InfoContext(ctx, "catalog regeneration deferred", "reason", err.Error())
		return nil
	}
	if errors.Is(err, pool.ErrInvalidPool) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return err
}

// catalogIndex resolves import picks by position+team+name and carries a
// name-only kicker index for rows imported with a blank team.
type catalogIndex struct {
	byKey        map[string]catalog.Player
	kickerByName map[string]catalog.Player
}

func newCatalogIndex(players []catalog.Player) catalogIndex {
	index := catalogIndex{
		byKey:        make(map[string]catalog.Player, len(players)),
		kickerByName: make(map[string]catalog.Player),
	}
	for _, p := range players {
		index.byKey[importKey(string(p.Position), p.Team, p.Name)] = p
		if p.Position == pool.PositionK {
			index.kickerByName[strings.ToLower(p.Name)] = p
		}
	}
	return index
}

func (idx catalogIndex) resolve(pick ImportPick) (catalog.Player, bool) {
	position := strings.ToUpper(strings.TrimSpace(pick.Position))
	team := strings.TrimSpace(pick.Team)
	name := strings.TrimSpace(pick.Name)

	if p, ok := idx.byKey[importKey(position, team, name)]; ok {
		return p, true
	}
	// Exported kicker rows sometimes arrive without a team; the name alone
	// identifies the synthesized kicker.
	if position == string(pool.PositionK) && team == "" {
		if p, ok := idx.kickerByName[strings.ToLower(name)]; ok {
			return p, true
		}
	}
	return catalog.Player{}, false
}

func importKey(position, team, name string) string {
	return position + "|" + team + "|" + strings.ToLower(name)
}

func resolveImportPicks(imported ImportEntry, index catalogIndex) ([]entry.Pick, error) {
	if len(imported.Picks) != entry.RosterSize {
		return nil, fmt.Errorf("%w: exactly %d picks are required, got %d",
			ErrInvalidInput, entry.RosterSize, len(imported.Picks))
	}

	picks := make([]entry.Pick, 0, len(imported.Picks))
	for _, pick := range imported.Picks {
		player, ok := index.resolve(pick)
		if !ok {
			return nil, fmt.Errorf("%w: %s %s (%s)", ErrPlayerNotFound, pick.Position, pick.Name, pick.Team)
		}
		picks = append(picks, entry.Pick{
			PlayerID:   player.ID,
			PlayerName: player.Name,
			Position:   player.Position,
			Team:       player.Team,
		})
	}
	return picks, nil
}
