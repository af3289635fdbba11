// Package snapshot writes the resolved build settings to the hand-off file
// the Gradle-side script sources, and reads a previous export back for
// staleness checks.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/smart24/kotlin-native/internal/foundation"
	"github.com/smart24/kotlin-native/internal/settings"
	"github.com/smart24/kotlin-native/internal/xcodeenv"
)

// Format selects the on-disk encoding of an exported snapshot.
type Format string

const (
	FormatDotenv Format = "dotenv"
	FormatJSON   Format = "json"
)

// Provenance keys added next to the re-exported variables.
const (
	KeySource      = "KONAN_BRIDGE_SOURCE"
	KeyInvocation  = "KONAN_BRIDGE_INVOCATION"
	KeyFingerprint = "KONAN_BRIDGE_FINGERPRINT"
	KeyResolvedAt  = "KONAN_BRIDGE_RESOLVED_AT"
)

// Write exports the settings to path in the given format, creating parent
// directories as needed.
func Write(path string, format Format, s settings.BuildSettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	switch format {
	case FormatDotenv:
		return writeDotenv(path, s)
	case FormatJSON:
		return writeJSON(path, s)
	default:
		return fmt.Errorf("unknown snapshot format %q", format)
	}
}

// writeDotenv renders the settings back into Xcode spelling: booleans become
// YES/NO, the output dir is omitted entirely when unset.
func writeDotenv(path string, s settings.BuildSettings) error {
	env := map[string]string{
		xcodeenv.EnvDebuggingSymbols:    yesNo(s.DebugSymbols),
		xcodeenv.EnvEnableOptimizations: yesNo(s.Optimizations),
		KeySource:                       string(s.Source),
		KeyInvocation:                   s.InvocationID,
		KeyFingerprint:                  s.Fingerprint,
		KeyResolvedAt:                   s.ResolvedAt.UTC().Format(time.RFC3339),
	}
	if dir := s.OutputDir.UnwrapOr(""); dir != "" {
		env[xcodeenv.EnvConfigurationBuildDir] = dir
	}
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("write dotenv snapshot: %w", err)
	}
	return nil
}

func writeJSON(path string, s settings.BuildSettings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write json snapshot: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// Exported is a previously written snapshot read back into comparable form.
type Exported struct {
	Source        string
	OutputDir     foundation.Option[string]
	DebugSymbols  bool
	Optimizations bool
	InvocationID  string
	Fingerprint   string
	ResolvedAt    time.Time
}

// ReadDotenv loads a dotenv-format snapshot. Timestamps that fail to parse
// are left zero rather than rejected; the fingerprint is what staleness
// checks actually compare.
func ReadDotenv(path string) (Exported, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return Exported{}, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	exp := Exported{
		Source:        env[KeySource],
		OutputDir:     foundation.None[string](),
		DebugSymbols:  env[xcodeenv.EnvDebuggingSymbols] == "YES",
		Optimizations: env[xcodeenv.EnvEnableOptimizations] == "YES",
		InvocationID:  env[KeyInvocation],
		Fingerprint:   env[KeyFingerprint],
	}
	if dir, ok := env[xcodeenv.EnvConfigurationBuildDir]; ok && dir != "" {
		exp.OutputDir = foundation.Some(dir)
	}
	if raw, ok := env[KeyResolvedAt]; ok {
		if ts, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
			exp.ResolvedAt = ts
		}
	}
	return exp, nil
}
