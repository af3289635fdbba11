package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/smart24/kotlin-native/internal/config"
	"github.com/smart24/kotlin-native/internal/errors"
	"github.com/smart24/kotlin-native/internal/properties"
	"github.com/smart24/kotlin-native/internal/settings"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"konanbridge.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Env     EnvCmd     `cmd:"" help:"Resolve and print the bridged build settings"`
	Export  ExportCmd  `cmd:"" help:"Resolve and write the snapshot file for the Gradle side"`
	Check   CheckCmd   `cmd:"" help:"Diagnose the bridge setup and the current environment"`
	Watch   WatchCmd   `cmd:"" help:"Keep the snapshot fresh while property files change"`
	History HistoryCmd `cmd:"" help:"List recent resolutions from the journal"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the tool configuration named by the root flag.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		if errors.IsCategory(err, errors.CategoryConfig) {
			return nil, err
		}
		return nil, errors.ConfigUnreadable(root.Config, err)
	}
	return cfg, nil
}

// rootContext is the context for one-shot commands. Only the watch command
// runs long enough to need signal-aware cancellation.
func rootContext() context.Context {
	return context.Background()
}

// newResolver builds the property store from configuration and wraps it in a
// resolver. The store is re-read from disk on every command invocation; only
// the watch daemon holds one longer, and it rebuilds per refresh.
func newResolver(cfg *config.Config) (*settings.Resolver, error) {
	store, err := properties.LoadFiles(cfg.Properties.Files...)
	if err != nil {
		return nil, errors.PropertiesUnreadable(cfg.Properties.Files[0], err)
	}
	return settings.NewResolver(store), nil
}
