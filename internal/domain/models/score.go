// internal/domain/models/score.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Score is one player's signed point value for one round. SittingOut and a
// nonzero Points are mutually exclusive by convention.
type Score struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID    primitive.ObjectID `bson:"group_id" json:"group_id"`
	SessionID  primitive.ObjectID `bson:"session_id" json:"session_id"`
	RoundID    primitive.ObjectID `bson:"round_id" json:"round_id"`
	PlayerID   primitive.ObjectID `bson:"player_id" json:"player_id"`
	Points     int                `bson:"points" json:"points"`
	SittingOut bool               `bson:"sitting_out" json:"sitting_out"`

	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
