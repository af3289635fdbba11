package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smart24/kotlin-native/internal/foundation"
	"github.com/smart24/kotlin-native/internal/journal"
	"github.com/smart24/kotlin-native/internal/settings"
	"github.com/smart24/kotlin-native/internal/snapshot"
	"github.com/smart24/kotlin-native/internal/xcodeenv"
)

func TestPrintSettings_Text(t *testing.T) {
	s := settings.BuildSettings{
		Source:       settings.SourceEnvironment,
		OutputDir:    foundation.Some("/build/products"),
		DebugSymbols: true,
		Fingerprint:  "fp-1",
	}

	var buf bytes.Buffer
	if err := printSettings(&buf, s, false); err != nil {
		t.Fatalf("printSettings() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"environment", "/build/products", "true", "fp-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintSettings_JSONIncludesNullOutputDir(t *testing.T) {
	s := settings.BuildSettings{Source: settings.SourceDisabled, OutputDir: foundation.None[string]()}

	var buf bytes.Buffer
	if err := printSettings(&buf, s, true); err != nil {
		t.Fatalf("printSettings() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"output_dir": null`) {
		t.Errorf("JSON output should carry explicit null:\n%s", buf.String())
	}
}

func TestPrintEntries(t *testing.T) {
	entries := []journal.Entry{
		{Outcome: journal.OutcomeOK, Source: "environment", OutputDir: "/out", ResolvedAt: time.Now()},
		{Outcome: journal.OutcomeInvalid, Source: "environment", Error: "relative path", ResolvedAt: time.Now()},
	}

	var buf bytes.Buffer
	if err := printEntries(&buf, entries, false); err != nil {
		t.Fatalf("printEntries() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "dir=/out") {
		t.Errorf("ok entry missing settings: %s", out)
	}
	if !strings.Contains(out, "relative path") {
		t.Errorf("invalid entry missing error text: %s", out)
	}

	buf.Reset()
	if err := printEntries(&buf, nil, false); err != nil {
		t.Fatalf("printEntries() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No resolutions") {
		t.Errorf("empty journal message missing: %s", buf.String())
	}
}

func TestRunChecks_ReportsMissingPropertyFileAsWarning(t *testing.T) {
	dir := t.TempDir()
	results := runChecks([]string{filepath.Join(dir, "gradle.properties")}, filepath.Join(dir, "xcode.env"))

	var buf bytes.Buffer
	failed, warned := printResults(&buf, results)
	if failed != 0 {
		t.Errorf("missing property file should warn, not fail:\n%s", buf.String())
	}
	if warned == 0 {
		t.Errorf("expected warnings for missing file and missing snapshot:\n%s", buf.String())
	}
}

func TestRunChecks_FailsOnRelativeBuildDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(xcodeenv.EnvConfigurationBuildDir, "relative/path")

	results := runChecks(nil, filepath.Join(dir, "xcode.env"))
	var buf bytes.Buffer
	failed, _ := printResults(&buf, results)
	if failed == 0 {
		t.Errorf("relative CONFIGURATION_BUILD_DIR should fail the check:\n%s", buf.String())
	}
}

func TestRunChecks_DetectsStaleSnapshot(t *testing.T) {
	dir := t.TempDir()
	props := filepath.Join(dir, "gradle.properties")
	if err := os.WriteFile(props, []byte("konan.useEnvironmentVariables=false\n"), 0644); err != nil {
		t.Fatalf("write properties: %v", err)
	}
	exportPath := filepath.Join(dir, "xcode.env")

	// A snapshot from some other environment.
	stale := settings.BuildSettings{Source: settings.SourceEnvironment, Fingerprint: "fp-old", ResolvedAt: time.Now()}
	if err := snapshot.Write(exportPath, snapshot.FormatDotenv, stale); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	results := runChecks([]string{props}, exportPath)
	var buf bytes.Buffer
	printResults(&buf, results)
	if !strings.Contains(buf.String(), "stale") {
		t.Errorf("expected staleness warning:\n%s", buf.String())
	}
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "konanbridge.yaml")
	if err := RunInit(path, false); err != nil {
		t.Fatalf("RunInit() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if err := RunInit(path, false); err == nil {
		t.Error("RunInit() should refuse to overwrite without force")
	}
}
