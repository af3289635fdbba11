// Package settings combines the project-property store with the environment
// provider and stamps the result with the provenance the Gradle side and the
// journal consume.
package settings

import (
	"time"

	"github.com/smart24/kotlin-native/internal/foundation"
)

// Source names which provider variant produced a BuildSettings value.
type Source string

const (
	SourceEnvironment Source = "environment"
	SourceDisabled    Source = "disabled"
)

// BuildSettings is one resolved set of bridged build settings plus provenance.
type BuildSettings struct {
	Source        Source                    `json:"source"`
	OutputDir     foundation.Option[string] `json:"output_dir"`
	DebugSymbols  bool                      `json:"debug_symbols"`
	Optimizations bool                      `json:"optimizations"`

	InvocationID string    `json:"invocation_id"`
	ResolvedAt   time.Time `json:"resolved_at"`
	Fingerprint  string    `json:"fingerprint"`
}
