package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/mbrandall/survivor-pool/internal/domain/pool"
	"github.com/mbrandall/survivor-pool/internal/domain/scoring"
	"github.com/mbrandall/survivor-pool/internal/usecase"
)

type setTeamsRequest struct {
	Teams []string `json:"teams" validate:"required,dive,required"`
}

func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeams")
	defer span.End()

	teams, err := h.adminService.GetTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if teams == nil {
		teams = []string{}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string][]string{"teams": teams})
}

func (h *Handler) SetTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetTeams")
	defer span.End()

	var req setTeamsRequest
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

	if err := h.adminService.SetTeams(ctx, req.Teams); err != nil {
		h.logger.WarnContext(ctx, "set teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string][]string{"teams": req.Teams})
}

type poolPlayerDTO struct {
	Name string `json:"name" validate:"required"`
}

// poolDTO mirrors pool.json: position → team → ordered players.
type poolDTO map[string]map[string][]poolPlayerDTO

func poolToDTO(p pool.Pool) poolDTO {
	out := make(poolDTO, len(p))
	for position, byTeam := range p {
		teams := make(map[string][]poolPlayerDTO, len(byTeam))
		for team, players := range byTeam {
			items := make([]poolPlayerDTO, 0, len(players))
			for _, player := range players {
				items = append(items, poolPlayerDTO{Name: player.Name})
			}
			teams[team] = items
		}
		out[string(position)] = teams
	}
	return out
}

func poolFromDTO(dto poolDTO) pool.Pool {
	out := make(pool.Pool, len(dto))
	for position, byTeam := range dto {
		teams := make(map[string][]pool.Player, len(byTeam))
		for team, players := range byTeam {
			items := make([]pool.Player, 0, len(players))
			for _, player := range players {
				items = append(items, pool.Player{Name: player.Name})
			}
			teams[team] = items
		}
		out[pool.Position(position)] = teams
	}
	return out
}

func (h *Handler) GetPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPool")
	defer span.End()

	playerPool, err := h.adminService.GetPool(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get pool failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if playerPool == nil {
		playerPool = pool.Pool{}
	}

	writeSuccess(ctx, w, http.StatusOK, poolToDTO(playerPool))
}

func (h *Handler) SetPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetPool")
	defer span.End()

	var req poolDTO
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if len(req) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: player pool is empty", usecase.ErrInvalidInput))
		return
	}

	if err := h.adminService.SetPool(ctx, poolFromDTO(req)); err != nil {
		h.logger.WarnContext(ctx, "set pool failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, req)
}

type scoreDTO struct {
	PlayerID   string    `json:"playerId"`
	Wildcard   int       `json:"wildcard"`
	Divisional int       `json:"divisional"`
	Conference int       `json:"conference"`
	SuperBowl  int       `json:"superbowl"`
	Total      int       `json:"total"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func scoreToDTO(s scoring.PlayerScore) scoreDTO {
	return scoreDTO{
		PlayerID:   s.PlayerID,
		Wildcard:   s.Wildcard,
		Divisional: s.Divisional,
		Conference: s.Conference,
		SuperBowl:  s.SuperBowl,
		Total:      s.Total(),
		UpdatedAt:  s.UpdatedAt,
	}
}

func (h *Handler) ListScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScores")
	defer span.End()

	scores, err := h.adminService.ListScores(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list scores failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoreDTO, 0, len(scores))
	for _, s := range scores {
		items = append(items, scoreToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

// recordScoreRequest carries per-round points; missing fields default to 0.
type recordScoreRequest struct {
	Wildcard   int `json:"wildcard" validate:"min=0"`
	Divisional int `json:"divisional" validate:"min=0"`
	Conference int `json:"conference" validate:"min=0"`
	SuperBowl  int `json:"superbowl" validate:"min=0"`
}

func (h *Handler) RecordScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordScore")
	defer span.End()

	playerID := r.PathValue("playerID")

	var req recordScoreRequest
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

	stored, err := h.adminService.RecordScore(ctx, scoring.PlayerScore{
		PlayerID:   playerID,
		Wildcard:   req.Wildcard,
		Divisional: req.Divisional,
		Conference: req.Conference,
		SuperBowl:  req.SuperBowl,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record score failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreToDTO(stored))
}

type setEntryStatusRequest struct {
	EntriesOpen *bool `json:"entriesOpen" validate:"required"`
}

func (h *Handler) SetEntryStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetEntryStatus")
	defer span.End()

	var req setEntryStatusRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if req.EntriesOpen == nil {
		writeError(ctx, w, fmt.Errorf("%w: entriesOpen is required", usecase.ErrInvalidInput))
		return
	}

	settings, err := h.adminService.SetEntriesOpen(ctx, *req.EntriesOpen)
	if err != nil {
		h.logger.ErrorContext(ctx, "set entry status failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"entriesOpen": settings.EntriesOpen})
}

type updateEntryRequest struct {
	Paid  *bool  `json:"paid" validate:"required"`
	Notes string `json:"notes" validate:"max=500"`
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateEntry")
	defer span.End()

	entryID := r.PathValue("entryID")

	var req updateEntryRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if req.Paid == nil {
		writeError(ctx, w, fmt.Errorf("%w: paid is required", usecase.ErrInvalidInput))
		return
	}

	if err := h.adminService.UpdateEntry(ctx, entryID, *req.Paid, req.Notes); err != nil {
		h.logger.WarnContext(ctx, "update entry failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"id":    entryID,
		"paid":  *req.Paid,
		"notes": req.Notes,
	})
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Reset")
	defer span.End()

	if err := h.adminService.Reset(ctx); err != nil {
		h.logger.ErrorContext(ctx, "season reset failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reset"})
}

type importPickRequest struct {
	Name     string `json:"name" validate:"required"`
	Position string `json:"position" validate:"required"`
	Team     string `json:"team"`
}

type importEntryRequest struct {
	EntryName string              `json:"entryName" validate:"required,max=100"`
	Email     string              `json:"email" validate:"required,max=254"`
	Paid      bool                `json:"paid"`
	Notes     string              `json:"notes"`
	CreatedAt string              `json:"createdAt"`
	Players   []importPickRequest `json:"players" validate:"required,len=14,dive"`
}

type importEntriesRequest struct {
	Entries []importEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

func (h *Handler) ImportEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportEntries")
	defer span.End()

	var req importEntriesRequest
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

	imports := make([]usecase.ImportEntry, 0, len(req.Entries))
	for _, item := range req.Entries {
		var createdAt time.Time
		if item.CreatedAt != "" {
			parsed, err := time.Parse(time.RFC3339, item.CreatedAt)
			if err != nil {
				writeError(ctx, w, fmt.Errorf("%w: invalid createdAt for entry %q: %v",
					usecase.ErrInvalidInput, item.EntryName, err))
				return
			}
			createdAt = parsed
		}

		picks := make([]usecase.ImportPick, 0, len(item.Players))
		for _, pick := range item.Players {
			picks = append(picks, usecase.ImportPick{
				Name:     pick.Name,
				Position: pick.Position,
				Team:     pick.Team,
			})
		}
		imports = append(imports, usecase.ImportEntry{
			Name:      item.EntryName,
			Email:     item.Email,
			Paid:      item.Paid,
			Notes:     item.Notes,
			CreatedAt: createdAt,
			Picks:     picks,
		})
	}

	result, err := h.adminService.Import(ctx, imports)
	if err != nil {
		h.logger.WarnContext(ctx, "import failed", "entries", len(imports), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"imported": result.Imported})
}

func (h *Handler) ExportEntries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportEntries")
	defer span.End()

	out, err := h.adminService.ExportCSV(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "export failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="entries.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
