// internal/app/features/auth/handler.go
package auth

import (
	accountstore "github.com/scorepadhq/scorepad/internal/app/store/accounts"
	"github.com/scorepadhq/scorepad/internal/app/store/emailverify"
	profilestore "github.com/scorepadhq/scorepad/internal/app/store/profiles"
	"github.com/scorepadhq/scorepad/internal/app/system/authn"
	"github.com/scorepadhq/scorepad/internal/app/system/mailer"
	"github.com/scorepadhq/scorepad/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SiteName appears in outbound verification emails.
const SiteName = "Scorepad"

// Handler owns signup, verification and login.
type Handler struct {
	DB       *mongo.Database
	Accounts *accountstore.Store
	Profiles *profilestore.Store
	Verify   *emailverify.Store
	Tokens   *authn.Manager
	Mail     *mailer.Mailer
	Limits   *ratelimit.LoginLimiter
	Log      *zap.Logger
}

// NewHandler constructs an auth Handler bound to the given backends.
func NewHandler(db *mongo.Database, tokens *authn.Manager, mail *mailer.Mailer, verify *emailverify.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Accounts: accountstore.New(db),
		Profiles: profilestore.New(db),
		Verify:   verify,
		Tokens:   tokens,
		Mail:     mail,
		Limits:   ratelimit.NewLoginLimiter(),
		Log:      logger,
	}
}
