// internal/domain/models/profile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds the denormalized display fields for one account.
// The document _id is the account id, so lookups are point reads.
// It is created lazily on first successful login and removed by
// account deletion.
type Profile struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	IconURL  string             `bson:"icon_url,omitempty" json:"icon_url,omitempty"`
	IconPath string             `bson:"icon_path,omitempty" json:"icon_path,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
