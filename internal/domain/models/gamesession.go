// internal/domain/models/gamesession.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameSession is one sitting within a group: a date, the scoring rate for
// the evening, a baseline score, and which players took part.
type GameSession struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	GroupID   primitive.ObjectID   `bson:"group_id" json:"group_id"`
	Title     string               `bson:"title" json:"title"`
	PlayedAt  time.Time            `bson:"played_at" json:"played_at"`
	Rate      float64              `bson:"rate" json:"rate"`
	BaseScore int                  `bson:"base_score" json:"base_score"`
	PlayerIDs []primitive.ObjectID `bson:"player_ids" json:"player_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
