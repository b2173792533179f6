// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	accountfeature "github.com/scorepadhq/scorepad/internal/app/features/account"
	authfeature "github.com/scorepadhq/scorepad/internal/app/features/auth"
	gamesfeature "github.com/scorepadhq/scorepad/internal/app/features/games"
	groupsfeature "github.com/scorepadhq/scorepad/internal/app/features/groups"
	healthfeature "github.com/scorepadhq/scorepad/internal/app/features/health"
	accountstore "github.com/scorepadhq/scorepad/internal/app/store/accounts"
	"github.com/scorepadhq/scorepad/internal/app/store/emailverify"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/cleanup"
	"github.com/scorepadhq/scorepad/internal/app/system/mailer"
	"github.com/scorepadhq/scorepad/internal/app/system/objstore"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It builds the shared backends (token
// manager, mailer, object store, deletion service) and mounts the feature
// routers for the mobile API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := authn.NewManager(appCfg.TokenSecret, appCfg.TokenTTL)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	store, err := objstore.New(context.Background(), objstore.Config{
		Type:        appCfg.StorageType,
		LocalPath:   appCfg.StorageLocalPath,
		S3Region:    appCfg.StorageS3Region,
		S3Bucket:    appCfg.StorageS3Bucket,
		S3Endpoint:  appCfg.StorageS3Endpoint,
		S3AccessKey: appCfg.StorageS3AccessKey,
		S3SecretKey: appCfg.StorageS3SecretKey,
	})
	if err != nil {
		logger.Error("object store init failed", zap.Error(err))
		return nil, err
	}

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Pass:     appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	}, logger)

	db := deps.MongoDatabase
	verify := emailverify.New(db, appCfg.EmailVerifyExpiry)

	// The deletion cascade removes the account record last, so a failed run
	// stays retryable.
	cleanupSvc := cleanup.New(deps.MongoClient, db, store, accountstore.New(db), logger, 0)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Locally stored uploads are served straight off disk; S3 objects are
	// served by the bucket (asset_base_url points there instead).
	if appCfg.StorageType == "" || appCfg.StorageType == "local" {
		r.Handle("/files/*", fileserver.Handler("/files", appCfg.StorageLocalPath))
	}

	authHandler := authfeature.NewHandler(db, tokens, mail, verify, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	accountHandler := accountfeature.NewHandler(db, cleanupSvc, store, appCfg.AssetBaseURL, logger)
	r.Mount("/account", accountfeature.Routes(accountHandler, tokens))

	groupsHandler := groupsfeature.NewHandler(db, cleanupSvc, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler, tokens))

	gamesHandler := gamesfeature.NewHandler(db, logger)
	r.Mount("/games", gamesfeature.Routes(gamesHandler, tokens))

	return r, nil
}
