// internal/app/features/groups/join.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	groupstore "github.com/scorepadhq/scorepad/internal/app/store/groups"
	requeststore "github.com/scorepadhq/scorepad/internal/app/store/joinrequests"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type joinRequest struct {
	InviteCode string `json:"invite_code"`
}

// HandleJoin files a join request against the group that owns the invite
// code. Existing members and duplicate requests both come back as conflict.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req joinRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	code := strings.ToUpper(strings.TrimSpace(req.InviteCode))
	if code == "" {
		webjson.Error(w, http.StatusBadRequest, "invite_code is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, groupstore.ErrInviteCodeUnknown) {
			webjson.Error(w, http.StatusNotFound, "invalid invite code")
			return
		}
		h.Log.Error("lookup invite code", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not process join request")
		return
	}
	if isMember(g, accountID) {
		webjson.Error(w, http.StatusConflict, "already a member of this group")
		return
	}

	jr, err := h.Requests.Create(ctx, g.ID, accountID)
	if err != nil {
		if errors.Is(err, requeststore.ErrDuplicate) {
			webjson.Error(w, http.StatusConflict, "join request already pending")
			return
		}
		h.Log.Error("create join request", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not process join request")
		return
	}
	webjson.Write(w, http.StatusCreated, jr)
}

// HandleListRequests returns pending join requests for a group. Owner only.
func (h *Handler) HandleListRequests(w http.ResponseWriter, r *http.Request) {
	g, ok := h.ownedGroup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Requests.ListByGroup(ctx, g.ID)
	if err != nil {
		h.Log.Error("list join requests", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not list join requests")
		return
	}
	if list == nil {
		list = []models.JoinRequest{}
	}
	webjson.Write(w, http.StatusOK, list)
}

// HandleApprove admits the requesting account into the group and retires
// the request. Owner only.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	g, ok := h.ownedGroup(w, r)
	if !ok {
		return
	}
	reqID, ok := requestParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	jr, err := h.Requests.GetByID(ctx, reqID)
	if err != nil {
		if errors.Is(err, requeststore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "join request not found")
			return
		}
		h.Log.Error("load join request", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not approve request")
		return
	}
	if jr.GroupID != g.ID {
		webjson.Error(w, http.StatusNotFound, "join request not found")
		return
	}

	if err := h.Groups.AddMember(ctx, g.ID, jr.AccountID); err != nil &&
		!errors.Is(err, groupstore.ErrAlreadyMember) {
		h.Log.Error("add member", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not approve request")
		return
	}
	if err := h.Requests.Delete(ctx, reqID); err != nil && !errors.Is(err, requeststore.ErrNotFound) {
		h.Log.Error("delete join request after approval", zap.Error(err))
	}
	webjson.OK(w)
}

// HandleReject discards a pending join request without admitting anyone.
// Owner only.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	g, ok := h.ownedGroup(w, r)
	if !ok {
		return
	}
	reqID, ok := requestParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	jr, err := h.Requests.GetByID(ctx, reqID)
	if err != nil {
		if errors.Is(err, requeststore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "join request not found")
			return
		}
		h.Log.Error("load join request", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not reject request")
		return
	}
	if jr.GroupID != g.ID {
		webjson.Error(w, http.StatusNotFound, "join request not found")
		return
	}

	if err := h.Requests.Delete(ctx, reqID); err != nil && !errors.Is(err, requeststore.ErrNotFound) {
		h.Log.Error("delete join request", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not reject request")
		return
	}
	webjson.OK(w)
}

func requestParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "requestID"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "bad request id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// ownedGroup loads the {id} group and verifies the caller owns it. Members
// who are not the owner get 403; outsiders get 404.
func (h *Handler) ownedGroup(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return models.Group{}, false
	}
	groupID, ok := groupParam(w, r)
	if !ok {
		return models.Group{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "group not found")
			return models.Group{}, false
		}
		h.Log.Error("get group", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load group")
		return models.Group{}, false
	}
	if !isMember(g, accountID) {
		webjson.Error(w, http.StatusNotFound, "group not found")
		return models.Group{}, false
	}
	if g.CreatedBy != accountID {
		webjson.Error(w, http.StatusForbidden, "only the group owner can do this")
		return models.Group{}, false
	}
	return g, true
}
