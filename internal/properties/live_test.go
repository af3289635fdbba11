package properties

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLiveStore_ObservesEdits(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.properties")
	if err := os.WriteFile(path, []byte("konan.useEnvironmentVariables=false\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := NewLiveStore(path)
	if UseEnvironmentVariables(store) {
		t.Fatal("opt-in should start false")
	}

	if err := os.WriteFile(path, []byte("konan.useEnvironmentVariables=true\n"), 0644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if !UseEnvironmentVariables(store) {
		t.Error("edit not observed by live store")
	}
}

func TestLiveStore_MissingFilesReadAsAbsent(t *testing.T) {
	store := NewLiveStore(filepath.Join(t.TempDir(), "gone.properties"))
	if _, ok := store.Lookup("anything"); ok {
		t.Error("missing file should read as absent")
	}
}
