package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAccount inserts a verified account and returns it.
func (f *Fixtures) CreateAccount(ctx context.Context, email string) models.Account {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Account{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: "x",
		DisplayName:  "Test Account",
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("accounts").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}
	return a
}

// CreateUnverifiedAccount inserts an unverified account with the given age.
func (f *Fixtures) CreateUnverifiedAccount(ctx context.Context, email string, age time.Duration) models.Account {
	f.t.Helper()

	created := time.Now().UTC().Add(-age)
	a := models.Account{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: "x",
		DisplayName:  "Test Account",
		Verified:     false,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	if _, err := f.db.Collection("accounts").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test account: %v", err)
	}
	return a
}

// CreateProfile inserts a profile document keyed by accountID.
func (f *Fixtures) CreateProfile(ctx context.Context, accountID primitive.ObjectID, name, iconPath string) models.Profile {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Profile{
		ID:        accountID,
		Name:      name,
		IconPath:  iconPath,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("profiles").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test profile: %v", err)
	}
	return p
}

// CreateGroup inserts a group owned by ownerID with the given members.
// The owner is always included in member_ids.
func (f *Fixtures) CreateGroup(ctx context.Context, title string, ownerID primitive.ObjectID, members ...primitive.ObjectID) models.Group {
	f.t.Helper()

	ids := []primitive.ObjectID{ownerID}
	ids = append(ids, members...)

	now := time.Now().UTC()
	g := models.Group{
		ID:         primitive.NewObjectID(),
		Title:      title,
		CreatedBy:  ownerID,
		MemberIDs:  ids,
		InviteCode: primitive.NewObjectID().Hex()[:8],
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// CreatePlayer inserts a roster entry for the group.
func (f *Fixtures) CreatePlayer(ctx context.Context, groupID primitive.ObjectID, name string) models.Player {
	f.t.Helper()

	p := models.Player{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("players").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test player: %v", err)
	}
	return p
}

// CreateSession inserts a game session for the group.
func (f *Fixtures) CreateSession(ctx context.Context, groupID primitive.ObjectID, title string) models.GameSession {
	f.t.Helper()

	now := time.Now().UTC()
	gs := models.GameSession{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		Title:     title,
		PlayedAt:  now,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("game_sessions").InsertOne(ctx, gs); err != nil {
		f.t.Fatalf("failed to create test session: %v", err)
	}
	return gs
}

// CreateRound inserts a round with the given number.
func (f *Fixtures) CreateRound(ctx context.Context, groupID, sessionID primitive.ObjectID, number int) models.Round {
	f.t.Helper()

	r := models.Round{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		SessionID: sessionID,
		Number:    number,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("rounds").InsertOne(ctx, r); err != nil {
		f.t.Fatalf("failed to create test round: %v", err)
	}
	return r
}

// CreateScore inserts a score for one player in one round.
func (f *Fixtures) CreateScore(ctx context.Context, round models.Round, playerID primitive.ObjectID, points int) models.Score {
	f.t.Helper()

	s := models.Score{
		ID:        primitive.NewObjectID(),
		GroupID:   round.GroupID,
		SessionID: round.SessionID,
		RoundID:   round.ID,
		PlayerID:  playerID,
		Points:    points,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("scores").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("failed to create test score: %v", err)
	}
	return s
}

// Count returns the number of documents in a collection matching everything.
func (f *Fixtures) Count(ctx context.Context, collection string) int64 {
	f.t.Helper()

	n, err := f.db.Collection(collection).CountDocuments(ctx, bson.M{})
	if err != nil {
		f.t.Fatalf("failed to count %s: %v", collection, err)
	}
	return n
}
