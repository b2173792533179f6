// internal/app/store/emailverify/store.go
package emailverify

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const (
	// CodeLength is the length of the verification code (6 digits).
	CodeLength = 6
	// DefaultExpiry is how long a verification code is valid.
	DefaultExpiry = 10 * time.Minute
	// BcryptCost for hashing codes.
	BcryptCost = 10
	// MaxVerifyAttempts is the maximum number of code checks per verification.
	MaxVerifyAttempts = 5
	// MaxResends is the maximum number of code resends within ResendWindow.
	MaxResends = 3
	// ResendWindow is the window for resend rate limiting.
	ResendWindow = 10 * time.Minute
)

var (
	// ErrNotFound is returned when a verification is missing or expired.
	ErrNotFound = errors.New("verification not found or expired")
	// ErrInvalidCode is returned when the code doesn't match.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrTooManyAttempts is returned after too many failed code checks.
	ErrTooManyAttempts = errors.New("too many verification attempts")
	// ErrTooManyResends is returned after too many resend requests.
	ErrTooManyResends = errors.New("too many resend requests")
)

// Verification is a pending email verification for one account.
type Verification struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AccountID   primitive.ObjectID `bson:"account_id"`
	Email       string             `bson:"email"`
	CodeHash    string             `bson:"code_hash"` // bcrypt hash of the 6-digit code
	ExpiresAt   time.Time          `bson:"expires_at"`
	CreatedAt   time.Time          `bson:"created_at"`
	Attempts    int                `bson:"attempts"`
	ResendCount int                `bson:"resend_count"`
	WindowStart time.Time          `bson:"window_start"`
}

// Store manages email verification records.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// New creates a Store. expiry <= 0 uses DefaultExpiry.
func New(db *mongo.Database, expiry time.Duration) *Store {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Store{
		c:      db.Collection("email_verifications"),
		expiry: expiry,
	}
}

// Expiry returns how long issued codes stay valid.
func (s *Store) Expiry() time.Duration {
	return s.expiry
}

// EnsureIndexes creates the TTL index so expired codes clean themselves up.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("idx_emailverify_expires_ttl").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "account_id", Value: 1}},
			Options: options.Index().SetName("idx_emailverify_account"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create issues a fresh verification code for an account, replacing any
// existing one. The plain code is returned exactly once, to be emailed.
// Resends count against a rate limit window.
func (s *Store) Create(ctx context.Context, accountID primitive.ObjectID, email string, isResend bool) (string, error) {
	now := time.Now()

	var existing Verification
	err := s.c.FindOne(ctx, bson.M{"account_id": accountID}).Decode(&existing)
	existingFound := err == nil

	if isResend && existingFound {
		if now.Before(existing.WindowStart.Add(ResendWindow)) && existing.ResendCount >= MaxResends {
			return "", ErrTooManyResends
		}
	}

	code := generateCode()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash code: %w", err)
	}

	resendCount := 0
	windowStart := now
	if existingFound && now.Before(existing.WindowStart.Add(ResendWindow)) {
		windowStart = existing.WindowStart
		resendCount = existing.ResendCount
		if isResend {
			resendCount++
		}
	}

	// Single pending verification per account.
	_, _ = s.c.DeleteMany(ctx, bson.M{"account_id": accountID})

	v := Verification{
		ID:          primitive.NewObjectID(),
		AccountID:   accountID,
		Email:       email,
		CodeHash:    string(hash),
		ExpiresAt:   now.Add(s.expiry),
		CreatedAt:   now,
		ResendCount: resendCount,
		WindowStart: windowStart,
	}
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		return "", fmt.Errorf("insert verification: %w", err)
	}
	return code, nil
}

// VerifyCode checks a submitted code. On success the record is deleted
// (single use). Both valid and invalid submissions count as attempts.
func (s *Store) VerifyCode(ctx context.Context, accountID primitive.ObjectID, code string) error {
	var v Verification
	err := s.c.FindOne(ctx, bson.M{
		"account_id": accountID,
		"expires_at": bson.M{"$gt": time.Now()},
	}).Decode(&v)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return err
	}

	if v.Attempts >= MaxVerifyAttempts {
		return ErrTooManyAttempts
	}
	_, _ = s.c.UpdateOne(ctx, bson.M{"_id": v.ID}, bson.M{"$inc": bson.M{"attempts": 1}})

	if err := bcrypt.CompareHashAndPassword([]byte(v.CodeHash), []byte(code)); err != nil {
		return ErrInvalidCode
	}

	_, _ = s.c.DeleteOne(ctx, bson.M{"_id": v.ID})
	return nil
}

// DeleteByAccount removes all verification records for an account.
func (s *Store) DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error {
	_, err := s.c.DeleteMany(ctx, bson.M{"account_id": accountID})
	return err
}

// generateCode returns a random 6-digit numeric code. Panics if the
// system's cryptographic random number generator fails.
func generateCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand.Read failed: " + err.Error())
	}
	n := int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
	if n < 0 {
		n = -n
	}
	code := (n % 900000) + 100000
	return fmt.Sprintf("%06d", code)
}
