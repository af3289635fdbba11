// Package xcodeenv exposes the Kotlin/Native-relevant subset of the build
// settings Xcode exports to run-script phases as environment variables.
//
// Access is gated by an opt-in Gradle project property: builds that have not
// set it get a provider that reports nothing regardless of what the process
// environment contains. Providers read the environment at access time and
// hold no state, so they are safe for concurrent use; the process environment
// is immutable for the duration of a build phase.
package xcodeenv

import (
	"os"
	"path/filepath"
	"strings"
)

// Environment variables exported by Xcode that the bridge consumes.
const (
	// EnvConfigurationBuildDir is the directory Xcode expects build
	// products in. Always an absolute path when Xcode sets it.
	EnvConfigurationBuildDir = "CONFIGURATION_BUILD_DIR"

	// EnvDebuggingSymbols carries the YES/NO debug-symbol switch of the
	// active build configuration.
	EnvDebuggingSymbols = "DEBUGGING_SYMBOLS"

	// EnvEnableOptimizations opts the Kotlin/Native compiler into
	// optimized compilation, YES/NO.
	EnvEnableOptimizations = "KONAN_ENABLE_OPTIMIZATIONS"
)

// PropertyUseEnvironment is the Gradle project property that opts a build in
// to reading the variables above. Unset means opted out.
const PropertyUseEnvironment = "konan.useEnvironmentVariables"

// Variables returns the names of all environment variables the bridge reads.
func Variables() []string {
	return []string{EnvConfigurationBuildDir, EnvDebuggingSymbols, EnvEnableOptimizations}
}

// LookupFunc looks up a key in the environment. The standard lookup is
// os.LookupEnv; tests inject their own.
type LookupFunc func(key string) (string, bool)

// Provider yields the current values of the bridged build settings.
//
// Implementations read live state: two calls may disagree if the environment
// changed in between, and nothing is cached at construction.
type Provider interface {
	// BuildOutputDir returns the absolute directory Xcode wants build
	// products in, or "" when the setting is unset. Returns
	// *InvalidConfigurationError when the variable is set to a relative
	// path.
	BuildOutputDir() (string, error)

	// DebugSymbolsEnabled reports whether the active configuration builds
	// with debug symbols.
	DebugSymbolsEnabled() bool

	// OptimizationsEnabled reports whether the Kotlin/Native compiler
	// should optimize.
	OptimizationsEnabled() bool
}

// NewProvider selects the provider variant for a build. With useEnvironment
// false the returned provider reports nothing and never touches the process
// environment.
func NewProvider(useEnvironment bool) Provider {
	return NewProviderWithLookup(useEnvironment, os.LookupEnv)
}

// NewProviderWithLookup is NewProvider with an injectable environment lookup.
func NewProviderWithLookup(useEnvironment bool, lookup LookupFunc) Provider {
	if !useEnvironment {
		return disabledProvider{}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return environmentProvider{lookup: lookup}
}

// environmentProvider reads the bridged settings from the environment on
// every access.
type environmentProvider struct {
	lookup LookupFunc
}

var _ Provider = environmentProvider{}

func (p environmentProvider) BuildOutputDir() (string, error) {
	raw, ok := p.lookup(EnvConfigurationBuildDir)
	if !ok || raw == "" {
		return "", nil
	}
	if !filepath.IsAbs(raw) {
		return "", &InvalidConfigurationError{
			Variable: EnvConfigurationBuildDir,
			Value:    raw,
			Reason:   "must be an absolute path",
		}
	}
	return raw, nil
}

func (p environmentProvider) DebugSymbolsEnabled() bool {
	return p.yes(EnvDebuggingSymbols)
}

func (p environmentProvider) OptimizationsEnabled() bool {
	return p.yes(EnvEnableOptimizations)
}

// yes reports whether an Xcode-style boolean setting is switched on. Xcode
// spells booleans YES/NO; only YES, in any casing, counts. Unset, empty and
// anything else (including "1" and "true") are off.
func (p environmentProvider) yes(name string) bool {
	raw, ok := p.lookup(name)
	return ok && strings.EqualFold(raw, "YES")
}

// disabledProvider is the opted-out variant: fixed answers, no environment
// access.
type disabledProvider struct{}

var _ Provider = disabledProvider{}

func (disabledProvider) BuildOutputDir() (string, error) { return "", nil }
func (disabledProvider) DebugSymbolsEnabled() bool       { return false }
func (disabledProvider) OptimizationsEnabled() bool      { return false }
