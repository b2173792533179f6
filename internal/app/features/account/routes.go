// internal/app/features/account/routes.go
package account

import (
	"github.com/go-chi/chi/v5"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
)

func Routes(h *Handler, tokens *authn.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireAccount)
	r.Get("/profile", h.HandleGetProfile)
	r.Put("/profile", h.HandleUpdateProfile)
	r.Put("/avatar", h.HandleUploadAvatar)
	r.Post("/delete", h.HandleDeleteAccount)
	return r
}
