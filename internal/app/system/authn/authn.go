// internal/app/system/authn/authn.go

// Package authn issues and verifies the bearer tokens mobile clients send
// with every request. Tokens are HS256 JWTs carrying the account id as the
// subject; no session state is kept server-side.
package authn

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/scorepadhq/scorepad/internal/app/system/webjson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const issuer = "scorepad"

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 30 * 24 * time.Hour

// ErrInvalidToken indicates the token failed validation for any reason.
var ErrInvalidToken = errors.New("invalid token")

// Manager signs and verifies tokens with a single shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager builds a Manager. The secret must be non-empty; ttl of zero
// falls back to DefaultTokenTTL.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("authn: token secret must be set")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// IssueToken signs a token for the given account.
func (m *Manager) IssueToken(accountID primitive.ObjectID) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   accountID.Hex(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature, issuer and expiry, and returns the account
// id the token was issued for.
func (m *Manager) VerifyToken(tokenString string) (primitive.ObjectID, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return primitive.NilObjectID, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Issuer != issuer {
		return primitive.NilObjectID, ErrInvalidToken
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return id, nil
}

type ctxKey string

const accountIDKey ctxKey = "accountID"

// AccountCtx returns the authenticated account id placed in the request
// context by RequireAccount.
func AccountCtx(r *http.Request) (primitive.ObjectID, bool) {
	id, ok := r.Context().Value(accountIDKey).(primitive.ObjectID)
	return id, ok
}

// WithAccount injects an account id into the request context. Exposed for
// handler tests.
func WithAccount(r *http.Request, id primitive.ObjectID) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), accountIDKey, id))
}

// RequireAccount rejects requests without a valid bearer token and injects
// the account id into the context for downstream handlers.
func (m *Manager) RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const scheme = "Bearer "
		if !strings.HasPrefix(header, scheme) {
			webjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		id, err := m.VerifyToken(header[len(scheme):])
		if err != nil {
			webjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, WithAccount(r, id))
	})
}
