// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS, body limits). AppConfig is everything specific to this
// application: connection strings, token signing, storage, mail, and the
// background sweeper.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token auth for the mobile API
	TokenSecret string        // HS256 signing secret (must be strong in production)
	TokenTTL    time.Duration // how long issued tokens stay valid

	// File storage configuration
	StorageType      string // "local" or "s3"
	StorageLocalPath string // local storage path (e.g., "./uploads/avatars")

	// S3 configuration (only used if StorageType is "s3")
	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3Endpoint  string // blank for AWS; set for S3-compatible services
	StorageS3AccessKey string
	StorageS3SecretKey string

	// AssetBaseURL prefixes stored object paths when building public URLs
	// returned to clients (e.g., avatar icons).
	AssetBaseURL string

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// How long emailed verification codes stay valid
	EmailVerifyExpiry time.Duration

	// Stale-account sweeper
	SweepInterval  time.Duration // how often the sweeper runs
	StaleThreshold time.Duration // unverified age before an account is reaped
	SweepDisabled  bool          // turn the sweeper off entirely
}
