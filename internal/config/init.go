package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# konanbridge configuration.
# Every setting shown here is the default; delete what you don't change.

properties:
  # Gradle property files consulted for konan.useEnvironmentVariables,
  # in order. Later files win, matching Gradle's local-over-shared rule.
  files:
    - gradle.properties
    - local.properties

export:
  # Where the resolved snapshot is written for the Gradle side to source.
  path: build/konan/xcode.env
  # dotenv or json
  format: dotenv

journal:
  # Local history of resolutions, queried with "konanbridge history".
  enabled: true
  path: build/konan/journal.db

watch:
  # Quiet period after a property-file change before re-resolving.
  debounce: 2s
  # Safety-net refresh for missed filesystem events.
  refresh_interval: 1m
  # Health and metrics endpoint, loopback only by default.
  listen: 127.0.0.1:7788
`

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
