// internal/app/features/account/handler.go
package account

import (
	profilestore "github.com/scorepadhq/scorepad/internal/app/store/profiles"
	"github.com/scorepadhq/scorepad/internal/app/system/cleanup"
	"github.com/scorepadhq/scorepad/internal/app/system/objstore"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the authenticated account surface: profile reads/updates,
// avatar upload, and account deletion.
type Handler struct {
	DB       *mongo.Database
	Profiles *profilestore.Store
	Cleanup  *cleanup.Service
	Storage  objstore.Store

	// AssetBaseURL prefixes stored object paths to build public icon URLs.
	AssetBaseURL string

	Log *zap.Logger
}

func NewHandler(db *mongo.Database, cleanupSvc *cleanup.Service, store objstore.Store, assetBaseURL string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:           db,
		Profiles:     profilestore.New(db),
		Cleanup:      cleanupSvc,
		Storage:      store,
		AssetBaseURL: assetBaseURL,
		Log:          logger,
	}
}
