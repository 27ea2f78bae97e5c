package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/players", handler.ListPlayers)
	mux.HandleFunc("POST /api/entries", handler.SubmitEntry)
	mux.HandleFunc("GET /api/entries/count", handler.CountEntries)
	mux.HandleFunc("GET /api/leaderboard", handler.Leaderboard)
	mux.HandleFunc("GET /api/entry-status", handler.EntryStatus)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /api/admin/teams", RequireAdmin(verifier, http.HandlerFunc(handler.GetTeams)))
	mux.Handle("PUT /api/admin/teams", RequireAdmin(verifier, http.HandlerFunc(handler.SetTeams)))
	mux.Handle("GET /api/admin/pool", RequireAdmin(verifier, http.HandlerFunc(handler.GetPool)))
	mux.Handle("PUT /api/admin/pool", RequireAdmin(verifier, http.HandlerFunc(handler.SetPool)))
	mux.Handle("GET /api/admin/scores", RequireAdmin(verifier, http.HandlerFunc(handler.ListScores)))
	mux.Handle("PUT /api/admin/scores/{playerID}", RequireAdmin(verifier, http.HandlerFunc(handler.RecordScore)))
	mux.Handle("PUT /api/admin/entry-status", RequireAdmin(verifier, http.HandlerFunc(handler.SetEntryStatus)))
	mux.Handle("PATCH /api/admin/entries/{entryID}", RequireAdmin(verifier, http.HandlerFunc(handler.UpdateEntry)))
	mux.Handle("POST /api/admin/reset", RequireAdmin(verifier, http.HandlerFunc(handler.Reset)))
	mux.Handle("POST /api/admin/import", RequireAdmin(verifier, http.HandlerFunc(handler.ImportEntries)))
	mux.Handle("GET /api/admin/export", RequireAdmin(verifier, http.HandlerFunc(handler.ExportEntries)))
}
