// internal/app/store/prune/prune.go

// Package prune deletes every document matching a filter in bounded-size
// batches. It is the primitive the account-deletion cascade is built from:
// each batch delete is a single command, but the loop as a whole is not
// atomic. A crash between batches leaves the collection partially pruned,
// which is safe: re-invoking with the same filter continues from whatever
// remains, and pruning an already-empty match set is a no-op.
package prune

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultBatchSize bounds how many documents one batch delete touches.
const DefaultBatchSize = 200

// Collection repeatedly fetches up to batchSize matching document ids and
// deletes them in one call, stopping when a fetch returns nothing. It
// returns the total number of documents deleted. Errors from the underlying
// find or delete are fatal to the prune and propagate to the caller.
func Collection(ctx context.Context, c *mongo.Collection, filter bson.M, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	findOpts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetLimit(int64(batchSize))

	var total int64
	for {
		cur, err := c.Find(ctx, filter, findOpts)
		if err != nil {
			return total, err
		}
		var page []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.All(ctx, &page); err != nil {
			return total, err
		}
		if len(page) == 0 {
			return total, nil
		}

		ids := make([]primitive.ObjectID, len(page))
		for i, d := range page {
			ids[i] = d.ID
		}
		res, err := c.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return total, err
		}
		total += res.DeletedCount
	}
}
