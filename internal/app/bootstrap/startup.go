// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	accountstore "github.com/scorepadhq/scorepad/internal/app/store/accounts"
	"github.com/scorepadhq/scorepad/internal/app/system/workers"
	"go.uber.org/zap"
)

// staleSweeper is started here and stopped in Shutdown.
var staleSweeper *workers.StaleAccounts

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It starts
// the background sweeper that removes accounts that never finished email
// verification.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SweepDisabled {
		logger.Info("stale-account sweeper disabled by config")
		return nil
	}

	accounts := accountstore.New(deps.MongoDatabase)
	staleSweeper = workers.NewStaleAccounts(accounts, logger, appCfg.SweepInterval, appCfg.StaleThreshold)
	staleSweeper.Start()
	return nil
}
