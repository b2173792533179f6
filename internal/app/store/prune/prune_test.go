package prune_test

import (
	"fmt"
	"testing"

	"github.com/scorepadhq/scorepad/internal/app/store/prune"
	"github.com/scorepadhq/scorepad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCollectionConvergence(t *testing.T) {
	const batchSize = 7

	// Counts chosen around the batch boundary: empty, single, exactly one
	// batch, one over, and many batches.
	for _, n := range []int{0, 1, batchSize, batchSize + 1, 10 * batchSize} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			ctx, cancel := testutil.TestContext()
			defer cancel()

			c := db.Collection("docs")
			parent := primitive.NewObjectID()
			other := primitive.NewObjectID()

			for i := 0; i < n; i++ {
				if _, err := c.InsertOne(ctx, bson.M{"parent_id": parent, "i": i}); err != nil {
					t.Fatalf("insert: %v", err)
				}
			}
			// Documents under a different parent must survive the prune.
			for i := 0; i < 3; i++ {
				if _, err := c.InsertOne(ctx, bson.M{"parent_id": other, "i": i}); err != nil {
					t.Fatalf("insert: %v", err)
				}
			}

			deleted, err := prune.Collection(ctx, c, bson.M{"parent_id": parent}, batchSize)
			if err != nil {
				t.Fatalf("prune failed: %v", err)
			}
			if deleted != int64(n) {
				t.Errorf("deleted %d documents, want %d", deleted, n)
			}

			remaining, err := c.CountDocuments(ctx, bson.M{"parent_id": parent})
			if err != nil {
				t.Fatalf("count: %v", err)
			}
			if remaining != 0 {
				t.Errorf("%d matching documents remain after prune", remaining)
			}
			untouched, err := c.CountDocuments(ctx, bson.M{"parent_id": other})
			if err != nil {
				t.Fatalf("count: %v", err)
			}
			if untouched != 3 {
				t.Errorf("prune touched other parent: %d of 3 remain", untouched)
			}
		})
	}
}

func TestCollectionEmptyFilterMatchIsNoOp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := db.Collection("docs")
	deleted, err := prune.Collection(ctx, c, bson.M{"parent_id": primitive.NewObjectID()}, 0)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted %d documents from empty match set", deleted)
	}
}
