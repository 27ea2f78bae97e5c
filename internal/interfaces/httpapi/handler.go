package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/mbrandall/survivor-pool/internal/domain/catalog"
	"github.com/mbrandall/survivor-pool/internal/domain/entry"
	"github.com/mbrandall/survivor-pool/internal/platform/logging"
	"github.com/mbrandall/survivor-pool/internal/usecase"
)

type Handler struct {
	entryService       *usecase.EntryService
	catalogService     *usecase.CatalogService
	leaderboardService *usecase.LeaderboardService
	adminService       *usecase.AdminService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	entryService *usecase.EntryService,
	catalogService *usecase.CatalogService,
	leaderboardService *usecase.LeaderboardService,
	adminService *usecase.AdminService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		entryService:       entryService,
		catalogService:     catalogService,
		leaderboardService: leaderboardService,
		adminService:       adminService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

type playerDTO struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
}

func playerToDTO(p catalog.Player) playerDTO {
	return playerDTO{
		PlayerID: p.ID,
		Name:     p.Name,
		Position: string(p.Position),
		Team:     p.Team,
	}
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.catalogService.ListPlayers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type submitEntryRequest struct {
	EntryName string   `json:"entryName" validate:"required,max=100"`
	Email     string   `json:"email" validate:"required,max=254"`
	Players   []string `json:"players" validate:"required,len=14,dive,required"`
}

type pickDTO struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
}

type entryDTO struct {
	ID        string    `json:"id"`
	EntryName string    `json:"entryName"`
	Email     string    `json:"email"`
	Paid      bool      `json:"paid"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	Players   []pickDTO `json:"players"`
}

func entryToDTO(e entry.Entry) entryDTO {
	picks := make([]pickDTO, 0, len(e.Picks))
	for _, p := range e.Picks {
		picks = append(picks, pickDTO{
			PlayerID: p.PlayerID,
			Name:     p.PlayerName,
			Position: string(p.Position),
			Team:     p.Team,
		})
	}

	return entryDTO{
		ID:        e.ID,
		EntryName: e.Name,
		Email:     e.Email,
		Paid:      e.Paid,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		Players:   picks,
	}
}

func (h *Handler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitEntry")
	defer span.End()

	var req submitEntryRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, err := h.entryService.Submit(ctx, usecase.SubmitEntryInput{
		Name:      req.EntryName,
		Email:     req.Email,
		PlayerIDs: req.Players,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit entry failed", "entry_name", req.EntryName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, entryToDTO(stored))
}

func (h *Handler) CountEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CountEntries")
	defer span.End()

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	count, err := h.entryService.CountByEmail(ctx, email)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"email": strings.ToLower(email),
		"count": count,
	})
}

type leaderboardPickDTO struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
	Points   int    `json:"points"`
}

type leaderboardRowDTO struct {
	Rank      int                  `json:"rank"`
	EntryID   string               `json:"entryId"`
	EntryName string               `json:"entryName"`
	Paid      bool                 `json:"paid"`
	Total     int                  `json:"totalScore"`
	CreatedAt time.Time            `json:"createdAt"`
	Players   []leaderboardPickDTO `json:"players"`
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Leaderboard")
	defer span.End()

	rows, err := h.leaderboardService.Leaderboard(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "leaderboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		picks := make([]leaderboardPickDTO, 0, len(row.Picks))
		for _, pick := range row.Picks {
			picks = append(picks, leaderboardPickDTO{
				PlayerID: pick.PlayerID,
				Name:     pick.PlayerName,
				Position: pick.Position,
				Team:     pick.Team,
				Points:   pick.Points,
			})
		}
		items = append(items, leaderboardRowDTO{
			Rank:      row.Rank,
			EntryID:   row.EntryID,
			EntryName: row.EntryName,
			Paid:      row.Paid,
			Total:     row.Total,
			CreatedAt: row.CreatedAt,
			Players:   picks,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) EntryStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EntryStatus")
	defer span.End()

	settings, err := h.entryService.Status(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "entry status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"entriesOpen": settings.EntriesOpen})
}
