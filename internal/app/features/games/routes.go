// internal/app/features/games/routes.go
package games

import (
	"github.com/go-chi/chi/v5"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
)

func Routes(h *Handler, tokens *authn.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireAccount)

	r.Post("/sessions", h.HandleCreateSession)
	r.Get("/groups/{groupID}/sessions", h.HandleListSessions)

	r.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Get("/", h.HandleGetSession)
		r.Post("/rounds", h.HandleCreateRound)
		r.Delete("/rounds/{roundID}", h.HandleDeleteRound)
		r.Put("/rounds/{roundID}/scores", h.HandleUpsertScores)
		r.Get("/rounds/{roundID}/scores", h.HandleListScores)
	})
	return r
}
