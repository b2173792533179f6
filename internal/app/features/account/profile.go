// internal/app/features/account/profile.go
package account

import (
	"context"
	"errors"
	"net/http"

	profilestore "github.com/scorepadhq/scorepad/internal/app/store/profiles"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/sanitize"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"go.uber.org/zap"
)

// HandleGetProfile returns the caller's profile document.
func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	profile, err := h.Profiles.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "profile not found")
			return
		}
		h.Log.Error("get profile", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load profile")
		return
	}
	webjson.Write(w, http.StatusOK, profile)
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// HandleUpdateProfile changes the caller's display name.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req updateProfileRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	name := sanitize.Text(req.Name)
	if name == "" {
		webjson.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Profiles.UpdateName(ctx, accountID, name); err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "profile not found")
			return
		}
		h.Log.Error("update profile name", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not update profile")
		return
	}
	webjson.OK(w)
}
