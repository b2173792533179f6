// internal/app/features/account/avatar.go
package account

import (
	"context"
	"errors"
	"net/http"
	"strings"

	profilestore "github.com/scorepadhq/scorepad/internal/app/store/profiles"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/avatars"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"go.uber.org/zap"
)

// maxAvatarBytes bounds avatar uploads (5 MB).
const maxAvatarBytes = 5 << 20

// HandleUploadAvatar accepts a multipart avatar image, stores it under a
// fresh object path, records it on the profile, and deletes the previous
// object if there was one.
func (h *Handler) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	file, header, err := r.FormFile("avatar")
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		webjson.Error(w, http.StatusBadRequest, "avatar must be an image")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	current, err := h.Profiles.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, profilestore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "profile not found")
			return
		}
		h.Log.Error("get profile for avatar", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not upload avatar")
		return
	}

	path, err := avatars.Upload(ctx, h.Storage, header.Filename, file, contentType)
	if err != nil {
		h.Log.Error("upload avatar", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not upload avatar")
		return
	}

	iconURL := strings.TrimSuffix(h.AssetBaseURL, "/") + "/" + path
	if err := h.Profiles.SetIcon(ctx, accountID, iconURL, path); err != nil {
		h.Log.Error("record avatar on profile", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not upload avatar")
		return
	}

	// Old object is unreferenced now; losing it is harmless.
	if current.IconPath != "" && current.IconPath != path {
		if err := avatars.Delete(ctx, h.Storage, current.IconPath); err != nil {
			h.Log.Warn("delete previous avatar", zap.Error(err))
		}
	}

	webjson.Write(w, http.StatusOK, map[string]string{"icon_url": iconURL})
}
