// internal/app/features/groups/leave.go
package groups

import (
	"context"
	"errors"
	"net/http"

	groupstore "github.com/scorepadhq/scorepad/internal/app/store/groups"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"go.uber.org/zap"
)

// HandleLeave removes the caller from a group. A departing owner hands
// ownership to the longest-standing remaining member; the last member out
// deletes the group and everything recorded under it.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	groupID, ok := groupParam(w, r)
	if !ok {
		return
	}

	// Batch timeout: leaving as the last member fans out into a full
	// subtree delete.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Batch())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("get group", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not leave group")
		return
	}
	if !isMember(g, accountID) {
		webjson.Error(w, http.StatusNotFound, "group not found")
		return
	}

	if err := h.Cleanup.ResolveGroup(ctx, g, accountID); err != nil {
		h.Log.Error("leave group", zap.String("group_id", g.ID.Hex()), zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not leave group")
		return
	}
	webjson.OK(w)
}
