// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
)

func Routes(h *Handler, tokens *authn.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireAccount)

	r.Post("/", h.HandleCreateGroup)
	r.Get("/", h.HandleListGroups)
	r.Post("/join", h.HandleJoin)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.HandleGetGroup)
		r.Post("/leave", h.HandleLeave)

		r.Get("/requests", h.HandleListRequests)
		r.Post("/requests/{requestID}/approve", h.HandleApprove)
		r.Post("/requests/{requestID}/reject", h.HandleReject)

		r.Post("/players", h.HandleAddPlayer)
		r.Get("/players", h.HandleListPlayers)
		r.Delete("/players/{playerID}", h.HandleDeletePlayer)
	})
	return r
}
