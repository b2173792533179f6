// internal/app/store/scores/scorestore.go
package scorestore

import (
	"context"
	"errors"
	"time"

	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrSittingOutWithPoints guards the convention that a sitting-out player
// cannot also carry a nonzero point value for the round.
var ErrSittingOutWithPoints = errors.New("a sitting-out score cannot have points")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("scores")}
}

// Upsert writes one player's score for one round, replacing any previous
// value for the same (round, player) pair.
func (s *Store) Upsert(ctx context.Context, sc models.Score) error {
	if sc.SittingOut && sc.Points != 0 {
		return ErrSittingOutWithPoints
	}
	_, err := s.c.UpdateOne(ctx,
		bson.M{"round_id": sc.RoundID, "player_id": sc.PlayerID},
		bson.M{
			"$set": bson.M{
				"group_id":    sc.GroupID,
				"session_id":  sc.SessionID,
				"points":      sc.Points,
				"sitting_out": sc.SittingOut,
				"updated_at":  time.Now().UTC(),
			},
		},
		options.Update().SetUpsert(true))
	return err
}

func (s *Store) ListByRound(ctx context.Context, roundID primitive.ObjectID) ([]models.Score, error) {
	cur, err := s.c.Find(ctx, bson.M{"round_id": roundID})
	if err != nil {
		return nil, err
	}
	var scores []models.Score
	if err := cur.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *Store) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.Score, error) {
	cur, err := s.c.Find(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return nil, err
	}
	var scores []models.Score
	if err := cur.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}

// DeleteByRound removes all scores for a round. Used when a single round is
// deleted interactively; the cascade uses the pruner instead.
func (s *Store) DeleteByRound(ctx context.Context, roundID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"round_id": roundID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
