package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/smart24/kotlin-native/internal/config"
	"github.com/smart24/kotlin-native/internal/errors"
	"github.com/smart24/kotlin-native/internal/journal"
	"github.com/smart24/kotlin-native/internal/logfields"
	"github.com/smart24/kotlin-native/internal/properties"
	"github.com/smart24/kotlin-native/internal/settings"
	"github.com/smart24/kotlin-native/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Listen string `help:"Override the configured health/metrics listen address"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if w.Listen != "" {
		cfg.Watch.Listen = w.Listen
	}
	return RunWatch(cfg)
}

func RunWatch(cfg *config.Config) error {
	slog.Info("Starting watch mode", "listen", cfg.Watch.Listen)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// A live store so property-file edits flip the provider variant on the
	// next refresh without restarting the daemon.
	resolver := settings.NewResolver(properties.NewLiveStore(cfg.Properties.Files...))

	var store journal.Store
	if cfg.Journal.IsEnabled() {
		sqlStore, journalErr := journal.NewSQLiteStore(cfg.Journal.Path)
		if journalErr != nil {
			slog.Warn("Journal unavailable, continuing without history", logfields.Error(journalErr))
		} else {
			store = sqlStore
		}
	}

	d, err := watch.NewDaemon(cfg, resolver, store)
	if err != nil {
		return errors.WatchFailed(err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- d.Start(ctx)
	}()

	slog.Info("Watch daemon started, waiting for shutdown signal...")

	select {
	case err := <-errChan:
		if err != nil {
			return errors.WatchFailed(err)
		}
		<-ctx.Done()
	case <-ctx.Done():
		slog.Info("Shutdown signal received, stopping watch daemon...")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	if err := d.Stop(stopCtx); err != nil {
		return errors.WatchFailed(fmt.Errorf("stop: %w", err))
	}

	slog.Info("Watch daemon stopped successfully")
	return nil
}
