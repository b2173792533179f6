// internal/app/features/account/delete.go
package account

import (
	"context"
	"net/http"

	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"go.uber.org/zap"
)

// confirmPhrase must be typed (or tapped through) by the user before the
// client may call delete. Anything else is rejected before a single
// document is touched.
const confirmPhrase = "DELETE"

type deleteRequest struct {
	Confirm string `json:"confirm"`
}

// HandleDeleteAccount permanently deletes the caller's own account via the
// cleanup cascade. Only ever operates on the authenticated account; there
// is no way to name a third party.
func (h *Handler) HandleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req deleteRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Confirm != confirmPhrase {
		webjson.Error(w, http.StatusBadRequest, "confirmation phrase required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	if err := h.Cleanup.DeleteAccount(ctx, accountID); err != nil {
		// Data cleanup already ran best-effort; the identity record is
		// still there, so the client can safely retry the whole call.
		h.Log.Error("account deletion failed",
			zap.String("account_id", accountID.Hex()),
			zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "account deletion failed, please retry")
		return
	}
	webjson.OK(w)
}
