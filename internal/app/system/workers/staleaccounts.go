// internal/app/system/workers/staleaccounts.go
package workers

import (
	"context"
	"sync"
	"time"

	accountstore "github.com/scorepadhq/scorepad/internal/app/store/accounts"
	"github.com/scorepadhq/scorepad/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	// DefaultSweepInterval is how often the sweep runs.
	DefaultSweepInterval = 60 * time.Minute
	// DefaultStaleThreshold is how old an unverified account must be
	// before it is swept.
	DefaultStaleThreshold = 1 * time.Hour
	// SweepPageSize is how many accounts one scan page holds.
	SweepPageSize = 1000
)

// AccountDirectory is the slice of the accounts store the sweeper needs.
type AccountDirectory interface {
	ListPage(ctx context.Context, token string, limit int) (accountstore.Page, error)
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// StaleAccounts is a background worker that deletes accounts which were
// created long enough ago and never completed email verification. Those
// accounts cannot log in, so they never created a profile or joined a
// group, so no cascade is needed and a bulk identity delete suffices.
//
// The ticker loop runs sweeps one at a time; a slow sweep delays the next
// tick rather than overlapping it.
type StaleAccounts struct {
	accounts  AccountDirectory
	log       *zap.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
}

// NewStaleAccounts creates the sweeper. Zero interval or threshold fall
// back to the defaults.
func NewStaleAccounts(accounts AccountDirectory, logger *zap.Logger, interval, threshold time.Duration) *StaleAccounts {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if threshold <= 0 {
		threshold = DefaultStaleThreshold
	}
	return &StaleAccounts{
		accounts:  accounts,
		log:       logger,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *StaleAccounts) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("stale account sweeper started",
		zap.Duration("interval", w.interval),
		zap.Duration("threshold", w.threshold))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *StaleAccounts) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("stale account sweeper stopped")
}

func (w *StaleAccounts) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), timeouts.Batch())
			count, err := w.Sweep(ctx)
			cancel()
			if err != nil {
				w.log.Error("stale account sweep failed", zap.Error(err))
				continue
			}
			if count > 0 {
				w.log.Info("swept stale accounts", zap.Int64("count", count))
			}
		}
	}
}

// Sweep pages through all accounts once and bulk-deletes the stale ones.
// The age cutoff is computed once against scan-time now, so an account
// created just under the threshold survives until the next run.
func (w *StaleAccounts) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-w.threshold)

	var total int64
	token := ""
	for {
		page, err := w.accounts.ListPage(ctx, token, SweepPageSize)
		if err != nil {
			return total, err
		}

		var stale []primitive.ObjectID
		for _, a := range page.Accounts {
			if !a.Disabled && !a.Verified && a.CreatedAt.Before(cutoff) {
				stale = append(stale, a.ID)
			}
		}
		if len(stale) > 0 {
			n, err := w.accounts.DeleteByIDs(ctx, stale)
			if err != nil {
				return total, err
			}
			total += n
		}

		if page.NextToken == "" {
			return total, nil
		}
		token = page.NextToken
	}
}
