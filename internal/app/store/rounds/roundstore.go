// internal/app/store/rounds/roundstore.go
package roundstore

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

var ErrNotFound = errors.New("round not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("rounds")}
}

// Create appends the next round to a session. The number is one past the
// current highest, keeping numbers 1-based and contiguous.
func (s *Store) Create(ctx context.Context, groupID, sessionID primitive.ObjectID) (models.Round, error) {
	var last models.Round
	err := s.c.FindOne(ctx, bson.M{"session_id": sessionID},
		options.FindOne().SetSort(bson.D{{Key: "number", Value: -1}})).Decode(&last)
	if err != nil && err != mongo.ErrNoDocuments {
		return models.Round{}, err
	}

	r := models.Round{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		SessionID: sessionID,
		Number:    last.Number + 1,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Round{}, err
	}
	return r, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Round, error) {
	var r models.Round
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Round{}, ErrNotFound
		}
		return models.Round{}, err
	}
	return r, nil
}

func (s *Store) ListBySession(ctx context.Context, sessionID primitive.ObjectID) ([]models.Round, error) {
	cur, err := s.c.Find(ctx, bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var rounds []models.Round
	if err := cur.All(ctx, &rounds); err != nil {
		return nil, err
	}
	return rounds, nil
}

// DeleteAndRenumber removes one round and shifts every later round in the
// session down by one so numbers stay contiguous.
func (s *Store) DeleteAndRenumber(ctx context.Context, sessionID, roundID primitive.ObjectID) error {
	var r models.Round
	if err := s.c.FindOne(ctx, bson.M{"_id": roundID, "session_id": sessionID}).Decode(&r); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}

	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": r.ID}); err != nil {
		return err
	}
	_, err := s.c.UpdateMany(ctx,
		bson.M{"session_id": sessionID, "number": bson.M{"$gt": r.Number}},
		bson.M{"$inc": bson.M{"number": -1}})
	return err
}

// Delete removes the round document only; the cascade prunes its scores
// first and does not renumber (the whole session is going away).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
