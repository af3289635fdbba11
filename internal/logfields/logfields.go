package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyInvocationID = "invocation_id"
	KeyVariable     = "variable"
	KeyPath         = "path"
	KeySource       = "source"
	KeyTrigger      = "trigger"
	KeyOutcome      = "outcome"
	KeyFingerprint  = "fingerprint"
	KeyDurationMS   = "duration_ms"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func InvocationID(id string) slog.Attr  { return slog.String(KeyInvocationID, id) }
func Variable(name string) slog.Attr    { return slog.String(KeyVariable, name) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Source(s string) slog.Attr         { return slog.String(KeySource, s) }
func Trigger(t string) slog.Attr        { return slog.String(KeyTrigger, t) }
func Outcome(o string) slog.Attr        { return slog.String(KeyOutcome, o) }
func Fingerprint(fp string) slog.Attr   { return slog.String(KeyFingerprint, fp) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil { return slog.String(KeyError, "") }
	return slog.String(KeyError, err.Error())
}
