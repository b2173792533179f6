// internal/app/features/groups/players.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	groupstore "github.com/scorepadhq/scorepad/internal/app/store/groups"
	playerstore "github.com/scorepadhq/scorepad/internal/app/store/players"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/sanitize"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// memberGroup loads the {id} group and verifies the caller is a member.
func (h *Handler) memberGroup(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
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
	return g, true
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

// HandleAddPlayer adds a roster entry. Players are score labels, not
// accounts; any member can manage the roster.
func (h *Handler) HandleAddPlayer(w http.ResponseWriter, r *http.Request) {
	g, ok := h.memberGroup(w, r)
	if !ok {
		return
	}

	var req addPlayerRequest
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

	p, err := h.Players.Create(ctx, g.ID, name)
	if err != nil {
		h.Log.Error("add player", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not add player")
		return
	}
	webjson.Write(w, http.StatusCreated, p)
}

// HandleListPlayers returns the group's roster in creation order.
func (h *Handler) HandleListPlayers(w http.ResponseWriter, r *http.Request) {
	g, ok := h.memberGroup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := h.Players.ListByGroup(ctx, g.ID)
	if err != nil {
		h.Log.Error("list players", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not list players")
		return
	}
	if list == nil {
		list = []models.Player{}
	}
	webjson.Write(w, http.StatusOK, list)
}

// HandleDeletePlayer removes a roster entry. Historical scores keep their
// player_id; readers treat a dangling id as a retired player.
func (h *Handler) HandleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	g, ok := h.memberGroup(w, r)
	if !ok {
		return
	}
	playerID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "playerID"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "bad player id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Players.Delete(ctx, g.ID, playerID); err != nil {
		if errors.Is(err, playerstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "player not found")
			return
		}
		h.Log.Error("delete player", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not delete player")
		return
	}
	webjson.OK(w)
}
