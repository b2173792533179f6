package scorestore_test

import (
	"errors"
	"testing"

	scorestore "github.com/scorepadhq/scorepad/internal/app/store/scores"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"github.com/scorepadhq/scorepad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpsertReplacesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := scorestore.New(db)
	roundID := primitive.NewObjectID()
	playerID := primitive.NewObjectID()
	base := models.Score{
		GroupID:   primitive.NewObjectID(),
		SessionID: primitive.NewObjectID(),
		RoundID:   roundID,
		PlayerID:  playerID,
	}

	first := base
	first.Points = 18
	if err := s.Upsert(ctx, first); err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	second := base
	second.Points = -24
	if err := s.Upsert(ctx, second); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	scores, err := s.ListByRound(ctx, roundID)
	if err != nil {
		t.Fatalf("ListByRound: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("got %d scores for (round, player), want 1", len(scores))
	}
	if scores[0].Points != -24 {
		t.Errorf("points = %d, want -24 (latest write wins)", scores[0].Points)
	}
}

func TestUpsertRejectsSittingOutWithPoints(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := scorestore.New(db)
	err := s.Upsert(ctx, models.Score{
		RoundID:    primitive.NewObjectID(),
		PlayerID:   primitive.NewObjectID(),
		Points:     5,
		SittingOut: true,
	})
	if !errors.Is(err, scorestore.ErrSittingOutWithPoints) {
		t.Errorf("got %v, want ErrSittingOutWithPoints", err)
	}
}

func TestUpsertAllowsSittingOutZero(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := scorestore.New(db)
	err := s.Upsert(ctx, models.Score{
		RoundID:    primitive.NewObjectID(),
		PlayerID:   primitive.NewObjectID(),
		SittingOut: true,
	})
	if err != nil {
		t.Errorf("sitting out with zero points: %v", err)
	}
}
