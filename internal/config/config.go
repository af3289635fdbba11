// Package config loads the tool's own konanbridge.yaml. The tool must work
// with zero setup inside an Xcode build phase, so a missing config file is
// not an error: defaults apply.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Properties PropertiesConfig `yaml:"properties"`
	Export     ExportConfig     `yaml:"export"`
	Journal    JournalConfig    `yaml:"journal"`
	Watch      WatchConfig      `yaml:"watch"`
}

// PropertiesConfig names the Gradle property files consulted for the opt-in
// flag, in precedence order (later files win).
type PropertiesConfig struct {
	Files []string `yaml:"files"`
}

// ExportConfig controls the snapshot hand-off file.
type ExportConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // "dotenv" or "json"
}

// JournalConfig controls the local resolution journal.
type JournalConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// IsEnabled reports whether journalling is on; unset defaults to on.
func (j JournalConfig) IsEnabled() bool {
	return j.Enabled == nil || *j.Enabled
}

// WatchConfig controls the watch daemon. Durations are configured as strings
// ("500ms", "2s") and parsed during validation.
type WatchConfig struct {
	Debounce        string `yaml:"debounce"`
	RefreshInterval string `yaml:"refresh_interval"`
	Listen          string `yaml:"listen"`
}

// DebounceDuration returns the parsed debounce interval. Validate has
// already rejected unparseable values by the time callers ask.
func (w WatchConfig) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 2 * time.Second
	}
	return d
}

// RefreshDuration returns the parsed periodic refresh interval.
func (w WatchConfig) RefreshDuration() time.Duration {
	d, err := time.ParseDuration(w.RefreshInterval)
	if err != nil {
		return time.Minute
	}
	return d
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env/.env.local if present; existing process env always wins.
	loadEnvFiles()

	config := &Config{}

	if _, err := os.Stat(configPath); err == nil {
		data, readErr := os.ReadFile(configPath)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}

		// Expand environment variables in the YAML content
		expandedData := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expandedData), config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyDefaults(config)

	if err := validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFiles preloads .env then .env.local via godotenv. godotenv never
// overrides variables already set in the process environment.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Note: %s couldn't be loaded: %v\n", envPath, err)
		}
	}
}

func applyDefaults(config *Config) {
	if len(config.Properties.Files) == 0 {
		config.Properties.Files = []string{"gradle.properties", "local.properties"}
	}
	if config.Export.Path == "" {
		config.Export.Path = "build/konan/xcode.env"
	}
	if config.Export.Format == "" {
		config.Export.Format = "dotenv"
	}
	if config.Journal.Path == "" {
		config.Journal.Path = "build/konan/journal.db"
	}
	if config.Watch.Debounce == "" {
		config.Watch.Debounce = "2s"
	}
	if config.Watch.RefreshInterval == "" {
		config.Watch.RefreshInterval = "1m"
	}
	if config.Watch.Listen == "" {
		config.Watch.Listen = "127.0.0.1:7788"
	}
}
