// internal/app/store/players/playerstore.go
package playerstore

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

var ErrNotFound = errors.New("player not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("players")}
}

func (s *Store) Create(ctx context.Context, groupID primitive.ObjectID, name string) (models.Player, error) {
	p := models.Player{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Player{}, err
	}
	return p, nil
}

func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Player, error) {
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var players []models.Player
	if err := cur.All(ctx, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *Store) Delete(ctx context.Context, groupID, playerID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": playerID, "group_id": groupID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
