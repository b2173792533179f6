// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a shared recording context several accounts can join.
//
// NOTE:
//   - MemberIDs is a flat bson array of account ids. Member removal is done
//     with $pull (remove by value) so concurrent joins are never clobbered.
//   - CreatedBy must be an element of MemberIDs while the group has at
//     least one member; leaving transfers ownership before removal breaks
//     that invariant.
//   - Everything keyed by group_id (players, game_sessions, rounds, scores,
//     join_requests) is exclusively owned by the group; nothing outside the
//     subtree references into it.
type Group struct {
	ID          primitive.ObjectID   `bson:"_id" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	CreatedBy   primitive.ObjectID   `bson:"created_by" json:"created_by"`
	MemberIDs   []primitive.ObjectID `bson:"member_ids" json:"member_ids"`
	InviteCode  string               `bson:"invite_code" json:"invite_code"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
