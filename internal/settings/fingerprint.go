package settings

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// fingerprint computes a stable hash of the value-affecting fields only.
// Invocation id and timestamp are deliberately excluded so identical
// environments yield identical fingerprints across invocations; that is what
// lets a stale exported snapshot be detected by comparison.
func fingerprint(s BuildSettings) string {
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }
	w("source", string(s.Source))
	w("output_dir", s.OutputDir.UnwrapOr(""))
	w("debug_symbols", strconv.FormatBool(s.DebugSymbols))
	w("optimizations", strconv.FormatBool(s.Optimizations))
	return hex.EncodeToString(h.Sum(nil))
}
