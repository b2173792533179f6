// internal/app/store/accounts/accountstore.go
package accountstore

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

// Store manages the accounts collection. It plays the identity-provider
// role for the rest of the app: the deletion workflows talk to it only
// through the narrow interfaces they declare.
type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	ErrNotFound       = errors.New("account not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("accounts")}
}

// EnsureIndexes creates the unique email index and the created_at index
// the sweeper pages on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_accounts_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "verified", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_accounts_verified_created"),
		},
	})
	return err
}

func (s *Store) Create(ctx context.Context, a models.Account) (models.Account, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, ErrDuplicateEmail
		}
		return models.Account{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, err
	}
	return a, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Account{}, ErrNotFound
		}
		return models.Account{}, err
	}
	return a, nil
}

// MarkVerified flips the verification flag. It is a one-way transition.
func (s *Store) MarkVerified(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"verified":   true,
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

// UpdateDisplayName changes the display name on the account record.
// Callers are responsible for keeping the profile document in sync.
func (s *Store) UpdateDisplayName(ctx context.Context, id primitive.ObjectID, name string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"display_name": name,
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes one account. Returns ErrNotFound when the account does not
// exist, so a retried account deletion can distinguish "already gone" from
// a store failure.
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

// Page is one page of accounts plus the continuation token for the next
// page. NextToken is empty when the scan is complete.
type Page struct {
	Accounts  []models.Account
	NextToken string
}

// ListPage returns up to limit accounts ordered by _id, starting after the
// account identified by token (a hex ObjectID from a previous page).
func (s *Store) ListPage(ctx context.Context, token string, limit int) (Page, error) {
	filter := bson.M{}
	if token != "" {
		after, err := primitive.ObjectIDFromHex(token)
		if err != nil {
			return Page{}, err
		}
		filter["_id"] = bson.M{"$gt": after}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit))
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return Page{}, err
	}
	var accounts []models.Account
	if err := cur.All(ctx, &accounts); err != nil {
		return Page{}, err
	}

	p := Page{Accounts: accounts}
	if len(accounts) == limit {
		p.NextToken = accounts[len(accounts)-1].ID.Hex()
	}
	return p, nil
}

// DeleteByIDs removes all listed accounts in one bulk call and returns the
// number actually deleted.
func (s *Store) DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := s.c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
