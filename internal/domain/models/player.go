// internal/domain/models/player.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Player is a named scorekeeping participant inside a group. Players are
// roster entries, not accounts; a player does not need to be an app user.
type Player struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID primitive.ObjectID `bson:"group_id" json:"group_id"`
	Name    string             `bson:"name" json:"name"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
