// internal/app/store/joinrequests/requeststore.go
package requeststore

import (
	"context"
	"errors"
	"time"

	"github.com/scorepadhq/scorepad/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrNotFound  = errors.New("join request not found")
	ErrDuplicate = errors.New("a join request for this group is already pending")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("join_requests")}
}

// EnsureIndexes enforces one pending request per (group, account).
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "account_id", Value: 1}},
		Options: options.Index().SetName("idx_joinreq_group_account").SetUnique(true),
	})
	return err
}

func (s *Store) Create(ctx context.Context, groupID, accountID primitive.ObjectID) (models.JoinRequest, error) {
	jr := models.JoinRequest{
		ID:          primitive.NewObjectID(),
		GroupID:     groupID,
		AccountID:   accountID,
		RequestedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, jr); err != nil {
		if wafflemongo.IsDup(err) {
			return models.JoinRequest{}, ErrDuplicate
		}
		return models.JoinRequest{}, err
	}
	return jr, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.JoinRequest, error) {
	var jr models.JoinRequest
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&jr); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.JoinRequest{}, ErrNotFound
		}
		return models.JoinRequest{}, err
	}
	return jr, nil
}

func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.JoinRequest, error) {
	cur, err := s.c.Find(ctx, bson.M{"group_id": groupID},
		options.Find().SetSort(bson.D{{Key: "requested_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.JoinRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes one request; both approval and rejection end here.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
