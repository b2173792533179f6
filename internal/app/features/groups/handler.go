// internal/app/features/groups/handler.go
package groups

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	groupstore "github.com/scorepadhq/scorepad/internal/app/store/groups"
	requeststore "github.com/scorepadhq/scorepad/internal/app/store/joinrequests"
	playerstore "github.com/scorepadhq/scorepad/internal/app/store/players"
	"github.com/scorepadhq/scorepad/internal/app/system/cleanup"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"github.com/scorepadhq/scorepad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns group CRUD, membership management, and the player roster.
type Handler struct {
	DB       *mongo.Database
	Groups   *groupstore.Store
	Requests *requeststore.Store
	Players  *playerstore.Store
	Cleanup  *cleanup.Service
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, cleanupSvc *cleanup.Service, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Groups:   groupstore.New(db),
		Requests: requeststore.New(db),
		Players:  playerstore.New(db),
		Cleanup:  cleanupSvc,
		Log:      logger,
	}
}

// groupParam parses the {id} URL parameter. Writes the error response
// itself and reports ok=false when the id is malformed.
func groupParam(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webjson.Error(w, http.StatusBadRequest, "bad group id")
		return primitive.NilObjectID, false
	}
	return id, true
}

// isMember reports whether accountID appears in the group's member list.
func isMember(g models.Group, accountID primitive.ObjectID) bool {
	for _, m := range g.MemberIDs {
		if m == accountID {
			return true
		}
	}
	return false
}
