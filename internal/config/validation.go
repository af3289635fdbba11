package config

import (
	"strings"
	"time"

	"github.com/smart24/kotlin-native/internal/errors"
)

// validate checks the loaded configuration after defaults are applied.
func validate(config *Config) error {
	for _, f := range config.Properties.Files {
		if strings.TrimSpace(f) == "" {
			return errors.ConfigInvalid("properties.files", "entries must be non-empty paths")
		}
	}

	if strings.TrimSpace(config.Export.Path) == "" {
		return errors.ConfigInvalid("export.path", "must be a non-empty path")
	}

	// Formats are normalized case-insensitively; anything else is a typo we
	// want surfaced before the build phase runs.
	format := strings.ToLower(strings.TrimSpace(config.Export.Format))
	switch format {
	case "dotenv", "json":
		config.Export.Format = format
	default:
		return errors.ConfigInvalid("export.format", "must be \"dotenv\" or \"json\"")
	}

	if config.Journal.IsEnabled() && strings.TrimSpace(config.Journal.Path) == "" {
		return errors.ConfigInvalid("journal.path", "must be a non-empty path when journalling is enabled")
	}

	if err := validateDuration("watch.debounce", config.Watch.Debounce); err != nil {
		return err
	}
	if err := validateDuration("watch.refresh_interval", config.Watch.RefreshInterval); err != nil {
		return err
	}

	if strings.TrimSpace(config.Watch.Listen) == "" {
		return errors.ConfigInvalid("watch.listen", "must be a host:port address")
	}

	return nil
}

func validateDuration(field, raw string) error {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return errors.ConfigInvalid(field, "not a valid duration")
	}
	if d <= 0 {
		return errors.ConfigInvalid(field, "must be positive")
	}
	return nil
}
