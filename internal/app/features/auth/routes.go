// internal/app/features/auth/routes.go
package auth

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/signup", h.HandleSignup)
	r.Post("/verify", h.HandleVerify)
	r.Post("/resend", h.HandleResend)
	r.Post("/login", h.HandleLogin)
	return r
}
