// internal/app/system/cleanup/account.go
package cleanup

import (
	"context"
	"errors"
	"fmt"

	profilestore "github.com/scorepadhq/scorepad/internal/app/store/profiles"
	"github.com/scorepadhq/scorepad/internal/app/system/avatars"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DeleteAccount permanently removes an account: its avatar object, its
// membership in (or sole ownership of) every group, its profile document,
// and finally the identity record itself.
//
// Steps 1-3 are best-effort: failures are logged and the cascade moves on.
// Only the final identity deletion is fatal, which keeps the whole
// operation retryable since every earlier step is a no-op on a re-run.
func (s *Service) DeleteAccount(ctx context.Context, accountID primitive.ObjectID) error {
	// 1. Avatar object. Tolerates an object that is already gone.
	profile, err := s.profiles.Get(ctx, accountID)
	switch {
	case err == nil:
		if profile.IconPath != "" {
			if err := avatars.Delete(ctx, s.objects, profile.IconPath); err != nil {
				s.log.Warn("avatar delete failed, continuing",
					zap.String("account_id", accountID.Hex()),
					zap.Error(err))
			}
		}
	case errors.Is(err, profilestore.ErrNotFound):
		// Never logged in, or a previous attempt got this far.
	default:
		s.log.Warn("profile read failed, continuing",
			zap.String("account_id", accountID.Hex()),
			zap.Error(err))
	}

	// 2. Every group the account belongs to, sequentially. One bad group
	// must not block cleanup of the rest.
	groups, err := s.groups.ListByMember(ctx, accountID)
	if err != nil {
		s.log.Error("group query failed, continuing to identity deletion",
			zap.String("account_id", accountID.Hex()),
			zap.Error(err))
	}
	for _, g := range groups {
		if err := s.ResolveGroup(ctx, g, accountID); err != nil {
			s.log.Error("group cascade failed, continuing",
				zap.String("account_id", accountID.Hex()),
				zap.String("group_id", g.ID.Hex()),
				zap.Error(err))
		}
	}

	// 3. Profile document.
	if err := s.profiles.Delete(ctx, accountID); err != nil {
		s.log.Warn("profile delete failed, continuing",
			zap.String("account_id", accountID.Hex()),
			zap.Error(err))
	}

	// 4. The identity record. Failure here is the operation's result.
	if err := s.identities.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}

	s.log.Info("account deleted",
		zap.String("account_id", accountID.Hex()),
		zap.Int("groups_resolved", len(groups)))
	return nil
}
