// internal/app/features/games/scores.go
package games

import (
	"context"
	"errors"
	"net/http"

	roundstore "github.com/scorepadhq/scorepad/internal/app/store/rounds"
	scorestore "github.com/scorepadhq/scorepad/internal/app/store/scores"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type scoreEntry struct {
	PlayerID   string `json:"player_id"`
	Points     int    `json:"points"`
	SittingOut bool   `json:"sitting_out"`
}

type upsertScoresRequest struct {
	Scores []scoreEntry `json:"scores"`
}

// HandleUpsertScores writes one or more players' scores for a round. Each
// (round, player) pair holds at most one score; resubmitting replaces it.
func (h *Handler) HandleUpsertScores(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.memberSession(w, r)
	if !ok {
		return
	}
	roundID, ok := objectIDParam(w, r, "roundID")
	if !ok {
		return
	}

	var req upsertScoresRequest
	if err := webjson.Decode(r, &req); err != nil {
		webjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Scores) == 0 {
		webjson.Error(w, http.StatusBadRequest, "scores is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	round, err := h.Rounds.GetByID(ctx, roundID)
	if err != nil {
		if errors.Is(err, roundstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "round not found")
			return
		}
		h.Log.Error("get round", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not record scores")
		return
	}
	if round.SessionID != gs.ID {
		webjson.Error(w, http.StatusNotFound, "round not found")
		return
	}

	for _, e := range req.Scores {
		playerID, err := primitive.ObjectIDFromHex(e.PlayerID)
		if err != nil {
			webjson.Error(w, http.StatusBadRequest, "bad player id")
			return
		}
		err = h.Scores.Upsert(ctx, models.Score{
			GroupID:    gs.GroupID,
			SessionID:  gs.ID,
			RoundID:    round.ID,
			PlayerID:   playerID,
			Points:     e.Points,
			SittingOut: e.SittingOut,
		})
		if err != nil {
			if errors.Is(err, scorestore.ErrSittingOutWithPoints) {
				webjson.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			h.Log.Error("upsert score", zap.Error(err))
			webjson.Error(w, http.StatusInternalServerError, "could not record scores")
			return
		}
	}
	webjson.OK(w)
}

// HandleListScores returns the scores recorded for one round.
func (h *Handler) HandleListScores(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.memberSession(w, r)
	if !ok {
		return
	}
	roundID, ok := objectIDParam(w, r, "roundID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	round, err := h.Rounds.GetByID(ctx, roundID)
	if err != nil {
		if errors.Is(err, roundstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "round not found")
			return
		}
		h.Log.Error("get round", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load scores")
		return
	}
	if round.SessionID != gs.ID {
		webjson.Error(w, http.StatusNotFound, "round not found")
		return
	}

	scores, err := h.Scores.ListByRound(ctx, roundID)
	if err != nil {
		h.Log.Error("list scores", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not load scores")
		return
	}
	if scores == nil {
		scores = []models.Score{}
	}
	webjson.Write(w, http.StatusOK, scores)
}
