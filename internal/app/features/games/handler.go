// internal/app/features/games/handler.go
package games

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	sessionstore "github.com/scorepadhq/scorepad/internal/app/store/gamesessions"
	groupstore "github.com/scorepadhq/scorepad/internal/app/store/groups"
	roundstore "github.com/scorepadhq/scorepad/internal/app/store/rounds"
	scorestore "github.com/scorepadhq/scorepad/internal/app/store/scores"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns game sessions, rounds, and scores within a group.
type Handler struct {
	DB       *mongo.Database
	Groups   *groupstore.Store
	Sessions *sessionstore.Store
	Rounds   *roundstore.Store
	Scores   *scorestore.Store
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Groups:   groupstore.New(db),
		Sessions: sessionstore.New(db),
		Rounds:   roundstore.New(db),
		Scores:   scorestore.New(db),
		Log:      logger,
	}
}

func objectIDParam(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "bad "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

// memberSession loads the {sessionID} session and verifies the caller
// belongs to the group it was recorded under. Outsiders get 404, never
// confirmation of existence.
func (h *Handler) memberSession(w http.ResponseWriter, r *http.Request) (models.GameSession, bool) {
	accountID, ok := authn.AccountCtx(r)
	if !ok {
		webjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return models.GameSession{}, false
	}
	sessionID, ok := objectIDParam(w, r, "sessionID")
	if !ok {
		return models.GameSession{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	gs, err := h.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "session not found")
			return models.GameSession{}, false
		}
		h.Log.Error("get session", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load session")
		return models.GameSession{}, false
	}

	g, err := h.Groups.GetByID(ctx, gs.GroupID)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "session not found")
			return models.GameSession{}, false
		}
		h.Log.Error("get group for session", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load session")
		return models.GameSession{}, false
	}
	for _, m := range g.MemberIDs {
		if m == accountID {
			return gs, true
		}
	}
	webjson.Error(w, http.StatusNotFound, "session not found")
	return models.GameSession{}, false
}
