package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mbrandall/survivor-pool/internal/domain/entry"
	"github.com/mbrandall/survivor-pool/internal/domain/pool"
	idgen "github.com/mbrandall/survivor-pool/internal/platform/id"
	"github.com/mbrandall/survivor-pool/internal/platform/logging"
)

// SubmitEntryInput is the incoming payload for one submission.
type SubmitEntryInput struct {
	Name      string
	Email     string
	PlayerIDs []string
}

type EntryService struct {
	entryRepo   entry.Repository
	poolStore   pool.Store
	catalog     *CatalogService
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
	maxPerEmail int
}

func NewEntryService(
	entryRepo entry.Repository,
	poolStore pool.Store,
	catalogSvc *CatalogService,
	idGen idgen.Generator,
	maxPerEmail int,
	logger *logging.Logger,
) *EntryService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EntryService{
		entryRepo:   entryRepo,
		poolStore:   poolStore,
		catalog:     catalogSvc,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
		maxPerEmail: maxPerEmail,
	}
}

// Submit validates and persists one entry. Player ids are checked against the
// current catalog and picks are denormalized from the catalog rows, never
// from the client payload. The per-email quota check and the insert run as
// one atomic repository call.
func (s *EntryService) Submit(ctx context.Context, input SubmitEntryInput) (entry.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Submit")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Name == "" {
		return entry.Entry{}, fmt.Errorf("%w: entry name is required", ErrInvalidInput)
	}
	if input.Email == "" {
		return entry.Entry{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if len(input.PlayerIDs) != entry.RosterSize {
		return entry.Entry{}, fmt.Errorf("%w: exactly %d players are required, got %d",
			ErrInvalidInput, entry.RosterSize, len(input.PlayerIDs))
	}

	settings, err := s.poolStore.LoadSettings(ctx)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("load settings: %w", err)
	}
	if !settings.EntriesOpen {
		return entry.Entry{}, ErrSubmissionsClosed
	}

	picks, err := s.resolvePicks(ctx, input.PlayerIDs)
	if err != nil {
		return entry.Entry{}, err
	}

	publicID, err := s.idGen.NewID()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("generate entry id: %w", err)
	}

	candidate := entry.Entry{
		ID:        publicID,
		Name:      input.Name,
		Email:     input.Email,
		Picks:     picks,
		CreatedAt: s.now().UTC(),
	}
	if err := candidate.ValidateBasic(); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	stored, err := s.entryRepo.CreateWithQuota(ctx, candidate, s.maxPerEmail)
	if err != nil {
		return entry.Entry{}, err
	}

	s.logger.InfoContext(ctx, "entry submitted",
		"entry_id", stored.ID,
		"entry_name", stored.Name,
		"picks", len(stored.Picks),
	)
	return stored, nil
}

// CountByEmail reports how many entries an email already holds.
func (s *EntryService) CountByEmail(ctx context.Context, email string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.CountByEmail")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return 0, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	count, err := s.entryRepo.CountByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}
	return count, nil
}

// Status reports whether submissions are currently open.
func (s *EntryService) Status(ctx context.Context) (pool.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EntryService.Status")
	defer span.End()

	settings, err := s.poolStore.LoadSettings(ctx)
	if err != nil {
		return pool.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (s *EntryService) resolvePicks(ctx context.Context, playerIDs []string) ([]entry.Pick, error) {
	players, err := s.catalog.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(players))
	for i, p := range players {
		byID[p.ID] = i
	}

	picks := make([]entry.Pick, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, raw := range playerIDs {
		playerID := strings.TrimSpace(raw)
		if playerID == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, dup := seen[playerID]; dup {
			return nil, fmt.Errorf("%w: duplicate player %s", ErrInvalidInput, playerID)
		}
		seen[playerID] = struct{}{}

		idx, ok := byID[playerID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
		}
		p := players[idx]
		picks = append(picks, entry.Pick{
			PlayerID:   p.ID,
			PlayerName: p.Name,
			Position:   p.Position,
			Team:       p.Team,
		})
	}

	return picks, nil
}
