package commands

import (
	"fmt"
	"log/slog"

	"github.com/smart24/kotlin-native/internal/errors"
	"github.com/smart24/kotlin-native/internal/journal"
	"github.com/smart24/kotlin-native/internal/logfields"
	"github.com/smart24/kotlin-native/internal/snapshot"
)

// ExportCmd implements the 'export' command: one resolve-and-write pass,
// the thing an Xcode "Run Script" phase actually invokes.
type ExportCmd struct {
	Output string `short:"o" help:"Override the configured snapshot path"`
	Format string `help:"Override the configured snapshot format (dotenv or json)"`
}

func (e *ExportCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if e.Output != "" {
		cfg.Export.Path = e.Output
	}
	if e.Format != "" {
		cfg.Export.Format = e.Format
	}

	resolver, err := newResolver(cfg)
	if err != nil {
		return err
	}

	ctx := rootContext()
	resolved, resolveErr := resolver.Resolve(ctx)

	// Journal both outcomes; a failed resolution is exactly the history a
	// developer goes looking for.
	if cfg.Journal.IsEnabled() {
		store, journalErr := journal.NewSQLiteStore(cfg.Journal.Path)
		if journalErr != nil {
			slog.Warn("Journal unavailable", logfields.Error(journalErr))
		} else {
			defer func() { _ = store.Close() }()
			if appendErr := store.Append(ctx, journal.NewEntry(resolved, resolveErr)); appendErr != nil {
				slog.Warn("Journal append failed", logfields.Error(appendErr))
			}
		}
	}

	if resolveErr != nil {
		return resolveErr
	}

	if err := snapshot.Write(cfg.Export.Path, snapshot.Format(cfg.Export.Format), resolved); err != nil {
		return errors.ExportFailed(cfg.Export.Path, err)
	}

	fmt.Printf("Exported %s snapshot to %s\n", cfg.Export.Format, cfg.Export.Path)
	slog.Info("Snapshot exported",
		logfields.Path(cfg.Export.Path),
		logfields.Source(string(resolved.Source)),
		logfields.InvocationID(resolved.InvocationID),
		logfields.Fingerprint(resolved.Fingerprint))
	return nil
}
