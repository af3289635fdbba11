// Package journal persists a local history of resolution outcomes so a
// developer can answer "what did the bridge hand Gradle last Tuesday" without
// re-running the build.
package journal

import (
	"context"
	"time"

	"github.com/smart24/kotlin-native/internal/settings"
)

// Outcome classifies a journal entry.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeInvalid Outcome = "invalid"
)

// Entry is one recorded resolution.
type Entry struct {
	ID            int64
	InvocationID  string
	Source        string
	OutputDir     string
	DebugSymbols  bool
	Optimizations bool
	Fingerprint   string
	Outcome       Outcome
	Error         string
	ResolvedAt    time.Time
}

// Store defines the interface for persisting and retrieving entries.
// Journalling is best-effort everywhere it is called: failures are logged,
// never allowed to fail the build.
type Store interface {
	// Append records a resolution.
	Append(ctx context.Context, entry Entry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// Close closes the store and releases resources.
	Close() error
}

// NewEntry builds an Entry from a resolution result. On a resolution error
// the settings value is zero and the entry records the failure.
func NewEntry(s settings.BuildSettings, resolveErr error) Entry {
	e := Entry{
		InvocationID:  s.InvocationID,
		Source:        string(s.Source),
		OutputDir:     s.OutputDir.UnwrapOr(""),
		DebugSymbols:  s.DebugSymbols,
		Optimizations: s.Optimizations,
		Fingerprint:   s.Fingerprint,
		Outcome:       OutcomeOK,
		ResolvedAt:    s.ResolvedAt,
	}
	if resolveErr != nil {
		e.Outcome = OutcomeInvalid
		e.Error = resolveErr.Error()
		if e.ResolvedAt.IsZero() {
			e.ResolvedAt = time.Now()
		}
	}
	return e
}
