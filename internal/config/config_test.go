package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smart24/kotlin-native/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "konanbridge.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want defaults for missing file", err)
	}

	if len(cfg.Properties.Files) != 2 || cfg.Properties.Files[0] != "gradle.properties" {
		t.Errorf("default property files = %v", cfg.Properties.Files)
	}
	if cfg.Export.Path != "build/konan/xcode.env" || cfg.Export.Format != "dotenv" {
		t.Errorf("default export = %+v", cfg.Export)
	}
	if !cfg.Journal.IsEnabled() || cfg.Journal.Path != "build/konan/journal.db" {
		t.Errorf("default journal = %+v", cfg.Journal)
	}
	if cfg.Watch.DebounceDuration() != 2*time.Second {
		t.Errorf("default debounce = %v", cfg.Watch.DebounceDuration())
	}
	if cfg.Watch.RefreshDuration() != time.Minute {
		t.Errorf("default refresh = %v", cfg.Watch.RefreshDuration())
	}
	if cfg.Watch.Listen != "127.0.0.1:7788" {
		t.Errorf("default listen = %q", cfg.Watch.Listen)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
export:
  path: out/bridge.env
watch:
  debounce: 250ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Export.Path != "out/bridge.env" {
		t.Errorf("export.path = %q", cfg.Export.Path)
	}
	if cfg.Export.Format != "dotenv" {
		t.Errorf("export.format default lost: %q", cfg.Export.Format)
	}
	if cfg.Watch.DebounceDuration() != 250*time.Millisecond {
		t.Errorf("debounce = %v", cfg.Watch.DebounceDuration())
	}
	if cfg.Watch.RefreshInterval != "1m" {
		t.Errorf("refresh_interval default lost: %q", cfg.Watch.RefreshInterval)
	}
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("BRIDGE_EXPORT_DIR", "/tmp/konan-test")
	path := writeConfig(t, `
export:
  path: ${BRIDGE_EXPORT_DIR}/xcode.env
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Export.Path != "/tmp/konan-test/xcode.env" {
		t.Errorf("export.path = %q, env not expanded", cfg.Export.Path)
	}
}

func TestLoad_NormalizesFormat(t *testing.T) {
	path := writeConfig(t, "export:\n  format: JSON\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Export.Format != "json" {
		t.Errorf("format = %q, want normalized json", cfg.Export.Format)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown format", "export:\n  format: toml\n"},
		{"bad debounce", "watch:\n  debounce: soon\n"},
		{"negative refresh", "watch:\n  refresh_interval: -5s\n"},
		{"empty listen", "watch:\n  listen: \"  \"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() succeeded, want config error")
			}
			if !errors.IsCategory(err, errors.CategoryConfig) {
				t.Errorf("error category = %v, want config", errors.GetCategory(err))
			}
		})
	}
}

func TestLoad_JournalCanBeDisabled(t *testing.T) {
	path := writeConfig(t, "journal:\n  enabled: false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Journal.IsEnabled() {
		t.Error("journal.enabled=false ignored")
	}
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "konanbridge.yaml")

	if err := Init(path, false); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	// Re-running without force must refuse to clobber.
	if err := Init(path, false); err == nil {
		t.Error("Init() overwrote existing file without --force")
	}
	if err := Init(path, true); err != nil {
		t.Errorf("Init(force) error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("example config does not load: %v", err)
	}
	if cfg.Export.Format != "dotenv" {
		t.Errorf("example export.format = %q", cfg.Export.Format)
	}
}
