package metrics

import "time"

// OutcomeLabel enumerates resolution outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeOK      OutcomeLabel = "ok"
	OutcomeInvalid OutcomeLabel = "invalid"
)

// Recorder defines observability hooks for resolution and export metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe for nil receivers when using the NoopRecorder (allowing
// optional injection).
type Recorder interface {
	ObserveResolutionDuration(d time.Duration)
	IncResolution(outcome OutcomeLabel)
	IncExport(result string)       // result: success|failed
	IncWatchReload(trigger string) // trigger: startup|fsnotify|schedule
	SetLastResolutionTime(t time.Time)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveResolutionDuration(time.Duration) {}
func (NoopRecorder) IncResolution(OutcomeLabel)              {}
func (NoopRecorder) IncExport(string)                        {}
func (NoopRecorder) IncWatchReload(string)                   {}
func (NoopRecorder) SetLastResolutionTime(time.Time)         {}
