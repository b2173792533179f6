// internal/app/system/cleanup/cascade.go
package cleanup

import (
	"context"
	"errors"
	"fmt"

	groupstore "github.com/scorepadhq/scorepad/internal/app/store/groups"
	"github.com/scorepadhq/scorepad/internal/app/store/prune"
	"github.com/scorepadhq/scorepad/internal/app/system/txn"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResolveGroup settles one group's relationship to a departing account.
// If the account is the last member, the group's entire document subtree is
// deleted; otherwise the account is surgically removed from the member list
// with ownership handed off when needed. The snapshot g may be stale: the
// membership-surgery branch re-reads the group inside a transaction before
// deciding anything final.
//
// Also the backing logic for the leave-group endpoint.
func (s *Service) ResolveGroup(ctx context.Context, g models.Group, accountID primitive.ObjectID) error {
	if len(remainingMembers(g.MemberIDs, accountID)) == 0 {
		return s.deleteGroupTree(ctx, g.ID)
	}
	return s.removeMember(ctx, g.ID, accountID)
}

// deleteGroupTree removes everything the group owns, leaves first: scores
// under each round, the round, the session, then roster and pending
// requests, and the group document last. A crash mid-way leaves orphans
// under a still-existing group, which a re-run cleans up since pruning an
// already-empty collection is a no-op.
//
// Deliberately not transactional: the subtree can hold far more documents
// than a single transaction allows, so resumability stands in for
// atomicity here.
func (s *Service) deleteGroupTree(ctx context.Context, groupID primitive.ObjectID) error {
	sessions, err := s.sessions.ListByGroup(ctx, groupID)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	for _, sess := range sessions {
		rounds, err := s.rounds.ListBySession(ctx, sess.ID)
		if err != nil {
			return fmt.Errorf("list rounds: %w", err)
		}
		for _, r := range rounds {
			if _, err := prune.Collection(ctx, s.db.Collection("scores"), bson.M{"round_id": r.ID}, s.batchSize); err != nil {
				return fmt.Errorf("prune scores: %w", err)
			}
			if err := s.rounds.Delete(ctx, r.ID); err != nil {
				return fmt.Errorf("delete round: %w", err)
			}
		}
		if err := s.sessions.Delete(ctx, sess.ID); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}

	if _, err := prune.Collection(ctx, s.db.Collection("players"), bson.M{"group_id": groupID}, s.batchSize); err != nil {
		return fmt.Errorf("prune players: %w", err)
	}
	if _, err := prune.Collection(ctx, s.db.Collection("join_requests"), bson.M{"group_id": groupID}, s.batchSize); err != nil {
		return fmt.Errorf("prune join requests: %w", err)
	}

	if err := s.groups.Delete(ctx, groupID); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// removeMember pulls the account out of the member list inside a
// transaction. The fresh in-transaction read guards against the race where
// two members leave at nearly the same time: if this account turns out to
// be the last one after all, the group document is deleted instead of
// being left memberless.
func (s *Service) removeMember(ctx context.Context, groupID, accountID primitive.ObjectID) error {
	return txn.WithTransaction(ctx, s.client, func(ctx context.Context) error {
		g, err := s.groups.GetByID(ctx, groupID)
		if err != nil {
			if errors.Is(err, groupstore.ErrNotFound) {
				// Another actor already deleted the group.
				return nil
			}
			return err
		}

		remaining := remainingMembers(g.MemberIDs, accountID)
		if len(remaining) == 0 {
			return s.groups.Delete(ctx, groupID)
		}

		var newOwner *primitive.ObjectID
		if g.CreatedBy == accountID {
			// Deterministic hand-off: first member in stored order.
			newOwner = &remaining[0]
		}
		return s.groups.PullMember(ctx, groupID, accountID, newOwner)
	})
}

// remainingMembers returns members minus every occurrence of accountID,
// preserving stored order.
func remainingMembers(members []primitive.ObjectID, accountID primitive.ObjectID) []primitive.ObjectID {
	remaining := make([]primitive.ObjectID, 0, len(members))
	for _, m := range members {
		if m != accountID {
			remaining = append(remaining, m)
		}
	}
	return remaining
}
