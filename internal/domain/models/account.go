// internal/domain/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is the durable identity record behind a signed-in user.
//
// NOTE:
//   - Accounts never appear inside group documents directly; groups keep
//     only the account ObjectID in member_ids.
//   - Verified flips exactly once, when the signup email code is confirmed.
//     Unverified accounts cannot log in, so they never create a Profile and
//     never join a Group. The stale-account sweeper relies on that.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	Verified     bool               `bson:"verified" json:"verified"`
	Disabled     bool               `bson:"disabled" json:"disabled"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
