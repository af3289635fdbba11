package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/smart24/kotlin-native/internal/errors"
	"github.com/smart24/kotlin-native/internal/properties"
	"github.com/smart24/kotlin-native/internal/settings"
	"github.com/smart24/kotlin-native/internal/snapshot"
	"github.com/smart24/kotlin-native/internal/xcodeenv"
)

// CheckCmd implements the 'check' command: a diagnostic pass over the bridge
// setup so a failing build phase can be explained without reading Gradle logs.
type CheckCmd struct {
	Strict bool `help:"Treat warnings as failures"`
}

// checkResult is one line of the diagnostic report.
type checkResult struct {
	level   string // "ok", "warn", "fail"
	message string
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	results := runChecks(cfg.Properties.Files, cfg.Export.Path)
	failed, warned := printResults(os.Stdout, results)

	if failed > 0 {
		return errors.ValidationFailed(fmt.Sprintf("%d check(s) failed", failed))
	}
	if c.Strict && warned > 0 {
		return errors.ValidationFailed(fmt.Sprintf("%d warning(s) in strict mode", warned))
	}
	return nil
}

func printResults(w io.Writer, results []checkResult) (failed, warned int) {
	for _, r := range results {
		fmt.Fprintf(w, "[%s] %s\n", r.level, r.message)
		switch r.level {
		case "fail":
			failed++
		case "warn":
			warned++
		}
	}
	return failed, warned
}

// runChecks produces the diagnostic report: property files, opt-in state,
// per-variable environment report, export destination, snapshot staleness.
func runChecks(propertyFiles []string, exportPath string) []checkResult {
	var results []checkResult

	// Property files.
	for _, path := range propertyFiles {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			results = append(results, checkResult{"warn", fmt.Sprintf("property file %s not found", path)})
		} else if err != nil {
			results = append(results, checkResult{"fail", fmt.Sprintf("property file %s unreadable: %v", path, err)})
		} else {
			results = append(results, checkResult{"ok", fmt.Sprintf("property file %s readable", path)})
		}
	}

	// Opt-in state.
	store, err := properties.LoadFiles(propertyFiles...)
	if err != nil {
		store = nil
		results = append(results, checkResult{"fail", fmt.Sprintf("property files unparseable: %v", err)})
	} else {
		if properties.UseEnvironmentVariables(store) {
			results = append(results, checkResult{"ok", fmt.Sprintf("%s=true: environment variables are consulted", xcodeenv.PropertyUseEnvironment)})
		} else {
			results = append(results, checkResult{"warn", fmt.Sprintf("%s not set: the bridge reports nothing", xcodeenv.PropertyUseEnvironment)})
		}
	}

	// Per-variable environment report.
	results = append(results, environmentReport()...)

	// Export destination.
	if err := destinationWritable(exportPath); err != nil {
		results = append(results, checkResult{"fail", fmt.Sprintf("export destination %s not writable: %v", exportPath, err)})
	} else {
		results = append(results, checkResult{"ok", fmt.Sprintf("export destination %s writable", exportPath)})
	}

	// Snapshot staleness.
	results = append(results, stalenessReport(exportPath, store))

	return results
}

// environmentReport describes each bridged variable's current state.
func environmentReport() []checkResult {
	var results []checkResult
	for _, name := range xcodeenv.Variables() {
		raw, set := os.LookupEnv(name)
		switch {
		case !set || raw == "":
			results = append(results, checkResult{"ok", fmt.Sprintf("%s unset", name)})
		case name == xcodeenv.EnvConfigurationBuildDir && !filepath.IsAbs(raw):
			results = append(results, checkResult{"fail", fmt.Sprintf("%s=%q is not an absolute path", name, raw)})
		default:
			results = append(results, checkResult{"ok", fmt.Sprintf("%s=%q", name, raw)})
		}
	}
	return results
}

// destinationWritable probes the export path's directory with a temp file.
func destinationWritable(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	probe, err := os.CreateTemp(dir, ".konanbridge-probe-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

// stalenessReport compares the exported snapshot's fingerprint against what a
// resolution would produce right now.
func stalenessReport(exportPath string, store *properties.FileStore) checkResult {
	exported, err := snapshot.ReadDotenv(exportPath)
	if err != nil {
		return checkResult{"warn", fmt.Sprintf("no snapshot at %s yet (run \"konanbridge export\")", exportPath)}
	}
	if store == nil {
		return checkResult{"warn", "cannot compare snapshot: property files unparseable"}
	}

	current, err := settings.NewResolver(store).Resolve(rootContext())
	if err != nil {
		return checkResult{"fail", fmt.Sprintf("current environment does not resolve: %v", err)}
	}
	if exported.Fingerprint != current.Fingerprint {
		return checkResult{"warn", fmt.Sprintf("snapshot at %s is stale (fingerprint mismatch)", exportPath)}
	}
	return checkResult{"ok", fmt.Sprintf("snapshot at %s matches the current environment", exportPath)}
}
