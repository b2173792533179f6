// internal/app/features/games/rounds.go
package games

import (
	"context"
	"errors"
	"net/http"

	roundstore "github.com/scorepadhq/scorepad/internal/app/store/rounds"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"go.uber.org/zap"
)

// HandleCreateRound appends the next round to a session.
func (h *Handler) HandleCreateRound(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.memberSession(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	round, err := h.Rounds.Create(ctx, gs.GroupID, gs.ID)
	if err != nil {
		h.Log.Error("create round", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not create round")
		return
	}
	webjson.Write(w, http.StatusCreated, round)
}

// HandleDeleteRound removes a round along with its scores, then renumbers
// the rounds after it so numbers stay contiguous.
func (h *Handler) HandleDeleteRound(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.memberSession(w, r)
	if !ok {
		return
	}
	roundID, ok := objectIDParam(w, r, "roundID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Scores first: a round without scores is recoverable, scores without
	// a round are orphans.
	if _, err := h.Scores.DeleteByRound(ctx, roundID); err != nil {
		h.Log.Error("delete round scores", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not delete round")
		return
	}
	if err := h.Rounds.DeleteAndRenumber(ctx, gs.ID, roundID); err != nil {
		if errors.Is(err, roundstore.ErrNotFound) {
			webjson.Error(w, http.StatusNotFound, "round not found")
			return
		}
		h.Log.Error("delete round", zap.Error(err))
		webjson.Error(w, http.StatusInternalServerError, "could not delete round")
		return
	}
	webjson.OK(w)
}
