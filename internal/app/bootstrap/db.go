// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	accountstore "github.com/scorepadhq/scorepad/internal/app/store/accounts"
	"github.com/scorepadhq/scorepad/internal/app/store/emailverify"
	groupstore "github.com/scorepadhq/scorepad/internal/app/store/groups"
	requeststore "github.com/scorepadhq/scorepad/internal/app/store/joinrequests"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a ping.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("ping mongodb: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the indexes every store depends on.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	if err := accountstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("accounts indexes: %w", err)
	}
	if err := emailverify.New(db, appCfg.EmailVerifyExpiry).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("email_verifications indexes: %w", err)
	}
	if err := groupstore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("groups indexes: %w", err)
	}
	if err := requeststore.New(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("join_requests indexes: %w", err)
	}
	logger.Info("database indexes ensured")
	return nil
}
