// internal/app/features/games/sessions.go
package games

import (
	"context"
	"errors"
	"net/http"
	"time"

	groupstore "github.com/scorepadhq/scorepad/internal/app/store/groups"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/sanitize"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createSessionRequest struct {
	GroupID   string    `json:"group_id"`
	Title     string    `json:"title"`
	PlayedAt  time.Time `json:"played_at"`
	Rate      float64   `json:"rate"`
	BaseScore int       `json:"base_score"`
	PlayerIDs []string  `json:"player_ids"`
}

// HandleCreateSession starts a new sitting within a group the caller
// belongs to.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req createSessionRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	groupID, err := primitive.ObjectIDFromHex(req.GroupID)
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "bad group_id")
		return
	}
	playerIDs := make([]primitive.ObjectID, 0, len(req.PlayerIDs))
	for _, raw := range req.PlayerIDs {
		pid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			webjson.Error(w, http.StatusBadRequest, "bad player id")
			return
		}
		playerIDs = append(playerIDs, pid)
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
		webjson.Error(w, http.StatusInternalServerError, "could not create session")
		return
	}
	member := false
	for _, m := range g.MemberIDs {
		if m == accountID {
			member = true
			break
		}
	}
	if !member {
		webjson.Error(w, http.StatusNotFound, "group not found")
		return
	}

	gs, err := h.Sessions.Create(ctx, models.GameSession{
		GroupID:   groupID,
		Title:     sanitize.Text(req.Title),
		PlayedAt:  req.PlayedAt,
		Rate:      req.Rate,
		BaseScore: req.BaseScore,
		PlayerIDs: playerIDs,
	})
	if err != nil {
		h.Log.Error("create session", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not create session")
		return
	}
	webjson.Write(w, http.StatusCreated, gs)
}

// HandleListSessions returns a group's sessions, most recent sitting first.
func (h *Handler) HandleListSessions(w http.ResponseWriter, r *http.Request) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	groupID, ok := objectIDParam(w, r, "groupID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "group not found")
			return
		}
		h.Log.Error("get group", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not list sessions")
		return
	}
	member := false
	for _, m := range g.MemberIDs {
		if m == accountID {
			member = true
			break
		}
	}
	if !member {
		webjson.Error(w, http.StatusNotFound, "group not found")
		return
	}

	list, err := h.Sessions.ListByGroup(ctx, groupID)
	if err != nil {
		h.Log.Error("list sessions", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not list sessions")
		return
	}
	if list == nil {
		list = []models.GameSession{}
	}
	webjson.Write(w, http.StatusOK, list)
}

// HandleGetSession returns one session with its rounds and scores, enough
// for a client to render the full score sheet in one request.
func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.memberSession(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rounds, err := h.Rounds.ListBySession(ctx, gs.ID)
	if err != nil {
		h.Log.Error("list rounds", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load session")
		return
	}
	scores, err := h.Scores.ListBySession(ctx, gs.ID)
	if err != nil {
		h.Log.Error("list scores", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load session")
		return
	}
	if rounds == nil {
		rounds = []models.Round{}
	}
	if scores == nil {
		scores = []models.Score{}
	}
	webjson.Write(w, http.StatusOK, sessionResponse{
		Session: gs,
		Rounds:  rounds,
		Scores:  scores,
	})
}

type sessionResponse struct {
	Session models.GameSession `json:"session"`
	Rounds  []models.Round     `json:"rounds"`
	Scores  []models.Score     `json:"scores"`
}
