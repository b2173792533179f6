// internal/app/store/profiles/profilestore.go
package profilestore

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

var ErrNotFound = errors.New("profile not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("profiles")}
}

func (s *Store) Get(ctx context.Context, accountID primitive.ObjectID) (models.Profile, error) {
	var p models.Profile
	if err := s.c.FindOne(ctx, bson.M{"_id": accountID}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Profile{}, ErrNotFound
		}
		return models.Profile{}, err
	}
	return p, nil
}

// Ensure creates the profile document on first login, or refreshes the
// denormalized name/email if it already exists.
func (s *Store) Ensure(ctx context.Context, accountID primitive.ObjectID, name, email string) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateByID(ctx, accountID, bson.M{
		"$set": bson.M{
			"name":       name,
			"email":      email,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}, options.Update().SetUpsert(true))
	return err
}

func (s *Store) UpdateName(ctx context.Context, accountID primitive.ObjectID, name string) error {
	res, err := s.c.UpdateByID(ctx, accountID, bson.M{"$set": bson.M{
		"name":       name,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetIcon records the uploaded avatar's public URL and storage path.
func (s *Store) SetIcon(ctx context.Context, accountID primitive.ObjectID, iconURL, iconPath string) error {
	res, err := s.c.UpdateByID(ctx, accountID, bson.M{"$set": bson.M{
		"icon_url":   iconURL,
		"icon_path":  iconPath,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the profile document. Deleting an absent profile is not an
// error; account deletion must be retry-safe.
func (s *Store) Delete(ctx context.Context, accountID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": accountID})
	return err
}
