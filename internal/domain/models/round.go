// internal/domain/models/round.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Round is one hand of play within a game session. Numbers are 1-based and
// contiguous; deleting a round renumbers the rounds after it to keep them so.
type Round struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID   primitive.ObjectID `bson:"group_id" json:"group_id"`
	SessionID primitive.ObjectID `bson:"session_id" json:"session_id"`
	Number    int                `bson:"number" json:"number"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
