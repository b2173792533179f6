package cleanup_test

import (
	"context"
	"errors"
	"testing"

	accountstore "github.com/scorepadhq/scorepad/internal/app/store/accounts"
	"github.com/scorepadhq/scorepad/internal/app/system/cleanup"
	"github.com/scorepadhq/scorepad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// fakeDeleter records object deletions and can be told to fail.
type fakeDeleter struct {
	deleted []string
	err     error
}

func (f *fakeDeleter) Delete(ctx context.Context, path string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, path)
	return nil
}

// failingIdentities always refuses to delete the identity record.
type failingIdentities struct{}

func (failingIdentities) Delete(ctx context.Context, id primitive.ObjectID) error {
	return errors.New("identity service unavailable")
}

func newService(db *mongo.Database, objects *fakeDeleter) *cleanup.Service {
	return cleanup.New(db.Client(), db, objects, accountstore.New(db), zap.NewNop(), 5)
}

// seedGroupTree fills a group with players, a session, rounds, scores, and
// a pending join request.
func seedGroupTree(ctx context.Context, t *testing.T, f *testutil.Fixtures, groupID primitive.ObjectID) {
	t.Helper()
	p := f.CreatePlayer(ctx, groupID, "Alice")
	gs := f.CreateSession(ctx, groupID, "Friday night")
	for i := 1; i <= 3; i++ {
		r := f.CreateRound(ctx, groupID, gs.ID, i)
		f.CreateScore(ctx, r, p.ID, i*10)
	}
	if _, err := f.DB().Collection("join_requests").InsertOne(ctx, bson.M{
		"group_id":   groupID,
		"account_id": primitive.NewObjectID(),
	}); err != nil {
		t.Fatalf("seed join request: %v", err)
	}
}

func countByGroup(ctx context.Context, t *testing.T, db *mongo.Database, collection string, groupID primitive.ObjectID) int64 {
	t.Helper()
	n, err := db.Collection(collection).CountDocuments(ctx, bson.M{"group_id": groupID})
	if err != nil {
		t.Fatalf("count %s: %v", collection, err)
	}
	return n
}

func TestDeleteAccountSoleMemberRemovesSubtree(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)

	a := f.CreateAccount(ctx, "sole@test.com")
	f.CreateProfile(ctx, a.ID, "Sole", "avatars/sole.png")
	g := f.CreateGroup(ctx, "Solo group", a.ID)
	seedGroupTree(ctx, t, f, g.ID)

	objects := &fakeDeleter{}
	if err := newService(db, objects).DeleteAccount(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	for _, coll := range []string{"players", "game_sessions", "rounds", "scores", "join_requests"} {
		if n := countByGroup(ctx, t, db, coll, g.ID); n != 0 {
			t.Errorf("%d orphan documents left in %s", n, coll)
		}
	}
	if n := f.Count(ctx, "groups"); n != 0 {
		t.Errorf("group document survived sole-member deletion")
	}
	if n := f.Count(ctx, "profiles"); n != 0 {
		t.Errorf("profile document survived deletion")
	}
	if n := f.Count(ctx, "accounts"); n != 0 {
		t.Errorf("account document survived deletion")
	}
	if len(objects.deleted) != 1 || objects.deleted[0] != "avatars/sole.png" {
		t.Errorf("avatar object deletions = %v, want [avatars/sole.png]", objects.deleted)
	}
}

func TestDeleteAccountOwnerTransfersOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)

	owner := f.CreateAccount(ctx, "owner@test.com")
	member := f.CreateAccount(ctx, "member@test.com")
	g := f.CreateGroup(ctx, "Shared group", owner.ID, member.ID)
	seedGroupTree(ctx, t, f, g.ID)

	if err := newService(db, &fakeDeleter{}).DeleteAccount(ctx, owner.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	var got struct {
		CreatedBy primitive.ObjectID   `bson:"created_by"`
		MemberIDs []primitive.ObjectID `bson:"member_ids"`
	}
	if err := db.Collection("groups").FindOne(ctx, bson.M{"_id": g.ID}).Decode(&got); err != nil {
		t.Fatalf("group vanished after owner departure: %v", err)
	}
	if got.CreatedBy != member.ID {
		t.Errorf("ownership not transferred: created_by = %s, want %s", got.CreatedBy.Hex(), member.ID.Hex())
	}
	if len(got.MemberIDs) != 1 || got.MemberIDs[0] != member.ID {
		t.Errorf("member_ids = %v, want [%s]", got.MemberIDs, member.ID.Hex())
	}

	// The group's recorded history must be untouched.
	if n := countByGroup(ctx, t, db, "scores", g.ID); n != 3 {
		t.Errorf("scores count = %d after owner departure, want 3", n)
	}
	if n := countByGroup(ctx, t, db, "game_sessions", g.ID); n != 1 {
		t.Errorf("sessions count = %d after owner departure, want 1", n)
	}
}

func TestDeleteAccountNonOwnerKeepsOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)

	owner := f.CreateAccount(ctx, "owner@test.com")
	member := f.CreateAccount(ctx, "member@test.com")
	g := f.CreateGroup(ctx, "Shared group", owner.ID, member.ID)

	if err := newService(db, &fakeDeleter{}).DeleteAccount(ctx, member.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	var got struct {
		CreatedBy primitive.ObjectID   `bson:"created_by"`
		MemberIDs []primitive.ObjectID `bson:"member_ids"`
	}
	if err := db.Collection("groups").FindOne(ctx, bson.M{"_id": g.ID}).Decode(&got); err != nil {
		t.Fatalf("group vanished after member departure: %v", err)
	}
	if got.CreatedBy != owner.ID {
		t.Errorf("created_by changed on non-owner departure: %s", got.CreatedBy.Hex())
	}
	if len(got.MemberIDs) != 1 || got.MemberIDs[0] != owner.ID {
		t.Errorf("member_ids = %v, want [%s]", got.MemberIDs, owner.ID.Hex())
	}
}

func TestDeleteAccountIsolationAcrossGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)

	a := f.CreateAccount(ctx, "a@test.com")
	other := f.CreateAccount(ctx, "other@test.com")
	solo := f.CreateGroup(ctx, "Solo", a.ID)
	shared := f.CreateGroup(ctx, "Shared", other.ID, a.ID)
	seedGroupTree(ctx, t, f, solo.ID)
	seedGroupTree(ctx, t, f, shared.ID)

	if err := newService(db, &fakeDeleter{}).DeleteAccount(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAccount failed: %v", err)
	}

	// Solo group and its subtree are gone.
	if n := countByGroup(ctx, t, db, "scores", solo.ID); n != 0 {
		t.Errorf("solo group scores survived: %d", n)
	}
	// Shared group keeps all its data.
	if n := countByGroup(ctx, t, db, "scores", shared.ID); n != 3 {
		t.Errorf("shared group scores = %d, want 3", n)
	}
	if n := countByGroup(ctx, t, db, "players", shared.ID); n != 1 {
		t.Errorf("shared group players = %d, want 1", n)
	}
}

func TestDeleteAccountIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)

	a := f.CreateAccount(ctx, "once@test.com")
	f.CreateProfile(ctx, a.ID, "Once", "avatars/once.png")
	g := f.CreateGroup(ctx, "Solo", a.ID)
	seedGroupTree(ctx, t, f, g.ID)

	svc := newService(db, &fakeDeleter{})
	if err := svc.DeleteAccount(ctx, a.ID); err != nil {
		t.Fatalf("first DeleteAccount failed: %v", err)
	}

	// The retry finds nothing left to clean; only the identity delete
	// reports the record gone.
	err := svc.DeleteAccount(ctx, a.ID)
	if !errors.Is(err, accountstore.ErrNotFound) {
		t.Fatalf("second DeleteAccount error = %v, want ErrNotFound", err)
	}
	for _, coll := range []string{"groups", "players", "game_sessions", "rounds", "scores", "profiles", "accounts"} {
		if n := f.Count(ctx, coll); n != 0 {
			t.Errorf("%d documents in %s after repeated deletion", n, coll)
		}
	}
}

func TestDeleteAccountToleratesAvatarFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)

	a := f.CreateAccount(ctx, "avatar@test.com")
	f.CreateProfile(ctx, a.ID, "Avatar", "avatars/broken.png")

	objects := &fakeDeleter{err: errors.New("object store down")}
	if err := newService(db, objects).DeleteAccount(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAccount should tolerate avatar failure, got: %v", err)
	}
	if n := f.Count(ctx, "accounts"); n != 0 {
		t.Errorf("account survived despite avatar failure being non-fatal")
	}
}

func TestDeleteAccountIdentityFailureIsFatal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f := testutil.NewFixtures(t, db)

	a := f.CreateAccount(ctx, "stuck@test.com")
	svc := cleanup.New(db.Client(), db, &fakeDeleter{}, failingIdentities{}, zap.NewNop(), 5)

	if err := svc.DeleteAccount(ctx, a.ID); err == nil {
		t.Fatal("DeleteAccount succeeded despite identity deletion failure")
	}
	// The account record is still there for the retry.
	if n := f.Count(ctx, "accounts"); n != 1 {
		t.Errorf("accounts count = %d, want 1 (retryable)", n)
	}
}
