// internal/domain/models/joinrequest.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JoinRequest records an account asking to join a group. The owner either
// approves (account merged into member_ids, document deleted) or rejects
// (document deleted).
type JoinRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID   primitive.ObjectID `bson:"group_id" json:"group_id"`
	AccountID primitive.ObjectID `bson:"account_id" json:"account_id"`

	RequestedAt time.Time `bson:"requested_at" json:"requested_at"`
}
