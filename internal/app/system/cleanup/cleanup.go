// internal/app/system/cleanup/cleanup.go

// Package cleanup unwinds an account's presence across the group subtree
// hierarchy when the account is permanently deleted. The work is forward-
// only and idempotent: there is no rollback, every step tolerates residue
// from an earlier crashed attempt, and retrying the whole operation is
// always safe until the identity record itself is gone.
package cleanup

import (
	"context"

	sessionstore "github.com/scorepadhq/scorepad/internal/app/store/gamesessions"
	groupstore "github.com/scorepadhq/scorepad/internal/app/store/groups"
	profilestore "github.com/scorepadhq/scorepad/internal/app/store/profiles"
	"github.com/scorepadhq/scorepad/internal/app/store/prune"
	roundstore "github.com/scorepadhq/scorepad/internal/app/store/rounds"
	"github.com/scorepadhq/scorepad/internal/app/system/avatars"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// IdentityProvider is the slice of the accounts store the orchestrator
// needs: deleting the identity record is the final, fatal step.
type IdentityProvider interface {
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Service owns the account-deletion cascade. All collaborators are injected
// so tests can substitute fakes for the identity provider and object store.
type Service struct {
	client *mongo.Client
	db     *mongo.Database

	groups   *groupstore.Store
	profiles *profilestore.Store
	sessions *sessionstore.Store
	rounds   *roundstore.Store

	objects    avatars.Deleter
	identities IdentityProvider

	log       *zap.Logger
	batchSize int
}

// New builds a Service. batchSize <= 0 uses the pruner default.
func New(client *mongo.Client, db *mongo.Database, objects avatars.Deleter, identities IdentityProvider, logger *zap.Logger, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = prune.DefaultBatchSize
	}
	return &Service{
		client:     client,
		db:         db,
		groups:     groupstore.New(db),
		profiles:   profilestore.New(db),
		sessions:   sessionstore.New(db),
		rounds:     roundstore.New(db),
		objects:    objects,
		identities: identities,
		log:        logger,
		batchSize:  batchSize,
	}
}
