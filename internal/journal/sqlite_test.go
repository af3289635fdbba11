package journal

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/smart24/kotlin-native/internal/foundation"
	"github.com/smart24/kotlin-native/internal/settings"
)

func TestJournalAppendAndRecent(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	entry := Entry{
		InvocationID:  "inv-1",
		Source:        "environment",
		OutputDir:     "/build/products",
		DebugSymbols:  true,
		Optimizations: false,
		Fingerprint:   "fp-1",
		Outcome:       OutcomeOK,
		ResolvedAt:    time.Now(),
	}

	if err := store.Append(ctx, entry); err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.InvocationID != "inv-1" {
		t.Errorf("expected invocation_id inv-1, got %s", got.InvocationID)
	}
	if got.OutputDir != "/build/products" {
		t.Errorf("expected output_dir /build/products, got %s", got.OutputDir)
	}
	if !got.DebugSymbols || got.Optimizations {
		t.Errorf("boolean fields did not round-trip: %+v", got)
	}
	if got.Outcome != OutcomeOK {
		t.Errorf("expected outcome ok, got %s", got.Outcome)
	}
}

func TestJournalRecentOrderAndLimit(t *testing.T) {
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		appendErr := store.Append(ctx, Entry{
			InvocationID: fmt.Sprintf("inv-%d", i),
			Source:       "disabled",
			Outcome:      OutcomeOK,
			ResolvedAt:   time.Now(),
		})
		if appendErr != nil {
			t.Fatalf("failed to append entry: %v", appendErr)
		}
	}

	entries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].InvocationID != "inv-4" {
		t.Errorf("expected newest entry first, got %s", entries[0].InvocationID)
	}
	if entries[2].InvocationID != "inv-2" {
		t.Errorf("expected inv-2 last in page, got %s", entries[2].InvocationID)
	}
}

func TestJournalPersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "journal.db")

	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := store.Append(context.Background(), Entry{InvocationID: "inv-p", Source: "disabled", Outcome: OutcomeOK, ResolvedAt: time.Now()}); err != nil {
		t.Fatalf("failed to append entry: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	entries, err := reopened.Recent(context.Background(), 1)
	if err != nil {
		t.Fatalf("failed to read entries: %v", err)
	}
	if len(entries) != 1 || entries[0].InvocationID != "inv-p" {
		t.Fatalf("entry did not survive reopen: %+v", entries)
	}
}

func TestNewEntry_FromSettings(t *testing.T) {
	s := settings.BuildSettings{
		Source:       settings.SourceEnvironment,
		OutputDir:    foundation.Some("/out"),
		DebugSymbols: true,
		InvocationID: "inv-9",
		ResolvedAt:   time.Now(),
		Fingerprint:  "fp-9",
	}

	e := NewEntry(s, nil)
	if e.Outcome != OutcomeOK || e.Error != "" {
		t.Errorf("expected ok outcome, got %+v", e)
	}
	if e.OutputDir != "/out" || !e.DebugSymbols {
		t.Errorf("settings fields not carried: %+v", e)
	}
}

func TestNewEntry_FromError(t *testing.T) {
	e := NewEntry(settings.BuildSettings{}, fmt.Errorf("CONFIGURATION_BUILD_DIR is relative"))
	if e.Outcome != OutcomeInvalid {
		t.Errorf("expected invalid outcome, got %s", e.Outcome)
	}
	if e.Error == "" {
		t.Error("expected error text recorded")
	}
	if e.ResolvedAt.IsZero() {
		t.Error("expected a timestamp even for failed resolutions")
	}
}
