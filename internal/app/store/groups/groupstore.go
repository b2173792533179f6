// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
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
	ErrNotFound          = errors.New("group not found")
	ErrDuplicateInvite   = errors.New("invite code collision, retry group creation")
	ErrAlreadyMember     = errors.New("account is already a member of this group")
	ErrInviteCodeUnknown = errors.New("no group matches this invite code")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

// EnsureIndexes creates the invite-code and member lookup indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "invite_code", Value: 1}},
			Options: options.Index().SetName("idx_groups_invite").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "member_ids", Value: 1}},
			Options: options.Index().SetName("idx_groups_members"),
		},
	})
	return err
}

// NewInviteCode mints a short join code. Uniqueness is enforced by the
// invite_code index; collisions surface as ErrDuplicateInvite on Create.
func NewInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// Create inserts a group owned by creatorID, who becomes its first member.
func (s *Store) Create(ctx context.Context, g models.Group, creatorID primitive.ObjectID) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.CreatedBy = creatorID
	g.MemberIDs = []primitive.ObjectID{creatorID}
	if g.InviteCode == "" {
		g.InviteCode = NewInviteCode()
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateInvite
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByInviteCode(ctx context.Context, code string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"invite_code": code}).Decode(&g); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, ErrInviteCodeUnknown
		}
		return models.Group{}, err
	}
	return g, nil
}

// ListByMember returns every group whose member_ids array contains accountID.
func (s *Store) ListByMember(ctx context.Context, accountID primitive.ObjectID) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, bson.M{"member_ids": accountID},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// AddMember appends accountID to member_ids. $addToSet keeps the array
// duplicate-free under concurrent approvals.
func (s *Store) AddMember(ctx context.Context, groupID, accountID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$addToSet": bson.M{"member_ids": accountID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrAlreadyMember
	}
	return nil
}

// PullMember removes accountID from member_ids by value and, when newOwner
// is non-nil, hands ownership to that member in the same update. Intended
// to run inside a transaction after a fresh read of the group.
func (s *Store) PullMember(ctx context.Context, groupID, accountID primitive.ObjectID, newOwner *primitive.ObjectID) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if newOwner != nil {
		set["created_by"] = *newOwner
	}
	_, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$pull": bson.M{"member_ids": accountID},
		"$set":  set,
	})
	return err
}

// Delete removes the group document itself. Children are pruned separately,
// leaves first.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
