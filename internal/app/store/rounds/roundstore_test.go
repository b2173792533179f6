package roundstore_test

import (
	"errors"
	"testing"

	roundstore "github.com/scorepadhq/scorepad/internal/app/store/rounds"
	"github.com/scorepadhq/scorepad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateNumbersAreContiguous(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := roundstore.New(db)
	groupID := primitive.NewObjectID()
	sessionID := primitive.NewObjectID()

	for want := 1; want <= 4; want++ {
		r, err := s.Create(ctx, groupID, sessionID)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if r.Number != want {
			t.Errorf("round %d got number %d", want, r.Number)
		}
	}
}

func TestDeleteAndRenumber(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := roundstore.New(db)
	groupID := primitive.NewObjectID()
	sessionID := primitive.NewObjectID()

	var ids []primitive.ObjectID
	for i := 0; i < 4; i++ {
		r, err := s.Create(ctx, groupID, sessionID)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids = append(ids, r.ID)
	}

	// Remove round 2; rounds 3 and 4 shift down.
	if err := s.DeleteAndRenumber(ctx, sessionID, ids[1]); err != nil {
		t.Fatalf("DeleteAndRenumber: %v", err)
	}

	rounds, err := s.ListBySession(ctx, sessionID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("got %d rounds, want 3", len(rounds))
	}
	for i, r := range rounds {
		if r.Number != i+1 {
			t.Errorf("round at position %d has number %d, want %d", i, r.Number, i+1)
		}
	}

	// The next Create continues the renumbered sequence.
	next, err := s.Create(ctx, groupID, sessionID)
	if err != nil {
		t.Fatalf("Create after delete: %v", err)
	}
	if next.Number != 4 {
		t.Errorf("next round number = %d, want 4", next.Number)
	}
}

func TestDeleteAndRenumberMissingRound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := roundstore.New(db)
	err := s.DeleteAndRenumber(ctx, primitive.NewObjectID(), primitive.NewObjectID())
	if !errors.Is(err, roundstore.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
