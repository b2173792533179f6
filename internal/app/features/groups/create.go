// internal/app/features/groups/create.go
package groups

import (
	"context"
	"errors"
	"net/http"

	groupstore "github.com/scorepadhq/scorepad/internal/app/store/groups"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/sanitize"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.uber.org/zap"
)

type createGroupRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HandleCreateGroup creates a group with the caller as owner and sole member.
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createGroupRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	title := sanitize.Text(req.Title)
	if title == "" {
		webjson.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.Create(ctx, models.Group{
		Title:       title,
		Description: sanitize.Text(req.Description),
	}, accountID)
	if err != nil {
		if errors.Is(err, groupstore.ErrDuplicateInvite) {
			webjson.Error(w, http.StatusConflict, "please retry group creation")
			return
		}
		h.Log.Error("create group", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not create group")
		return
	}
	webjson.Write(w, http.StatusCreated, g)
}

// HandleListGroups returns every group the caller belongs to.
func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Groups.ListByMember(ctx, accountID)
	if err != nil {
		h.Log.Error("list groups", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not list groups")
		return
	}
	if list == nil {
		list = []models.Group{}
	}
	webjson.Write(w, http.StatusOK, list)
}

// HandleGetGroup returns a single group. Members only; an outsider gets 404
// rather than confirmation that the group exists.
func (h *Handler) HandleGetGroup(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	groupID, ok := groupParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("get group", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load group")
		return
	}
	if !isMember(g, accountID) {
		webjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	webjson.Write(w, http.StatusOK, g)
}
