package logfields

import (
	"errors"
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"InvocationID", KeyInvocationID, "inv-1", InvocationID("inv-1")},
		{"Variable", KeyVariable, "CONFIGURATION_BUILD_DIR", Variable("CONFIGURATION_BUILD_DIR")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Source", KeySource, "environment", Source("environment")},
		{"Trigger", KeyTrigger, "fsnotify", Trigger("fsnotify")},
		{"Outcome", KeyOutcome, "ok", Outcome("ok")},
		{"Fingerprint", KeyFingerprint, "abc123", Fingerprint("abc123")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if tc.attr.Value.String() != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %s", tc.name, tc.attrVal, tc.attr.Value.String())
		}
	}
}

func TestErrorHelper(t *testing.T) {
	a := Error(errors.New("boom"))
	if a.Key != KeyError || a.Value.String() != "boom" {
		t.Fatalf("Error attr = %s=%s", a.Key, a.Value.String())
	}
	if got := Error(nil).Value.String(); got != "" {
		t.Fatalf("Error(nil) value = %q, want empty", got)
	}
}
