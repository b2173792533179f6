// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for Scorepad.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_secret, etc.
//   - Environment variables: SCOREPAD_MONGO_URI, SCOREPAD_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "scorepad", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Bearer-token auth
	{Name: "token_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Token signing secret (must be strong in production)"},
	{Name: "token_ttl", Default: "720h", Desc: "Issued token lifetime (e.g., 720h for 30 days)"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads/avatars", Desc: "Local storage path for uploaded files"},

	// S3 configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_endpoint", Default: "", Desc: "S3 endpoint override for compatible services"},
	{Name: "storage_s3_access_key", Default: "", Desc: "S3 access key (blank uses the default AWS chain)"},
	{Name: "storage_s3_secret_key", Default: "", Desc: "S3 secret key"},

	// Public asset URLs
	{Name: "asset_base_url", Default: "http://localhost:8080/files", Desc: "Base URL prefixed to stored object paths"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@scorepad.app", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Scorepad", Desc: "From display name"},

	// Email verification settings
	{Name: "email_verify_expiry", Default: "10m", Desc: "Email verification code expiry (e.g., 10m, 1h)"},

	// Stale-account sweeper
	{Name: "sweep_interval", Default: "60m", Desc: "How often the stale-account sweeper runs"},
	{Name: "stale_threshold", Default: "1h", Desc: "Unverified account age before removal"},
	{Name: "sweep_disabled", Default: false, Desc: "Disable the stale-account sweeper"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, SCOREPAD_* for app), and
// command-line flags, merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SCOREPAD", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret: appValues.String("token_secret"),
		TokenTTL:    appValues.Duration("token_ttl", 720*time.Hour),

		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),

		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Endpoint:  appValues.String("storage_s3_endpoint"),
		StorageS3AccessKey: appValues.String("storage_s3_access_key"),
		StorageS3SecretKey: appValues.String("storage_s3_secret_key"),

		AssetBaseURL: appValues.String("asset_base_url"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),

		EmailVerifyExpiry: appValues.Duration("email_verify_expiry", 10*time.Minute),

		SweepInterval:  appValues.Duration("sweep_interval", time.Hour),
		StaleThreshold: appValues.Duration("stale_threshold", time.Hour),
		SweepDisabled:  appValues.Bool("sweep_disabled"),
	}
	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation. It runs before
// any backends are built, so configuration mistakes fail startup early.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.TokenSecret == "" {
		return fmt.Errorf("token_secret must be set")
	}
	if appCfg.StorageType == "s3" && appCfg.StorageS3Bucket == "" {
		return fmt.Errorf("storage_type 's3' requires storage_s3_bucket")
	}
	return nil
}
