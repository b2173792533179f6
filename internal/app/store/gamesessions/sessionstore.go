// internal/app/store/gamesessions/sessionstore.go
package sessionstore

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

var ErrNotFound = errors.New("game session not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("game_sessions")}
}

func (s *Store) Create(ctx context.Context, gs models.GameSession) (models.GameSession, error) {
	now := time.Now().UTC()
	gs.ID = primitive.NewObjectID()
	if gs.PlayedAt.IsZero() {
		gs.PlayedAt = now
	}
	gs.CreatedAt = now
	gs.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, gs); err != nil {
		return models.GameSession{}, err
	}
	return gs, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.GameSession, error) {
	var gs models.GameSession
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&gs); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.GameSession{}, ErrNotFound
		}
		return models.GameSession{}, err
	}
	return gs, nil
}

func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GameSession, error) {
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID},
		options.Find().SetSort(bson.D{{Key: "played_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var out []models.GameSession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the session document only. The cascade is responsible for
// pruning rounds and scores first.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
