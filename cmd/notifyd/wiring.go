package main

import (
	"time"

	"github.com/notifyd/notifyd/internal/activation"
	"github.com/notifyd/notifyd/internal/config"
	"github.com/notifyd/notifyd/internal/platform"
)

// buildRouter assembles the click-to-focus machinery on top of the
// platform workspace.
func buildRouter(cfg *config.Config) *activation.Router {
	ws := platform.NewWorkspace()
	opener := platform.ExecOpener{}

	resolver := activation.NewResolverDepth(ws, cfg.Activation.MaxResolveDepth)
	oracle := activation.NewOracle(ws, ws, activation.OracleConfig{
		AlphaMin:     cfg.Activation.VisibilityAlphaMin,
		MinDimension: cfg.Activation.VisibilityMinDimension,
	})
	ctrl := activation.NewController(ws)
	engine := activation.NewEngine(ctrl, oracle, ws, opener, activation.TimerScheduler{}, activation.EngineConfig{
		SettleDelay: settleDelay(cfg),
		MaxAttempts: cfg.Activation.MaxAttempts,
	})

	return activation.NewRouter(resolver, engine, opener, ws)
}

func settleDelay(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Activation.SettleDelayMS) * time.Millisecond
}
