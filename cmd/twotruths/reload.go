package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/twotruths"
)

// reloadOnHangup reloads the engine's generator configs on every SIGHUP until ctx ends.
func reloadOnHangup(ctx context.Context, eng *twotruths.Engine, logger *slog.Logger) error {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hup:
			if err := eng.Reload(ctx); err != nil {
				logger.Error("reload failed, keeping previous generators", "error", err)
				continue
			}
			logger.Info("generators reloaded", "count", len(eng.Generators()))
		}
	}
}
