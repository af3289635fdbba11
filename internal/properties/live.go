package properties

import (
	"log/slog"
)

// LiveStore re-reads the property files on every lookup. The watch daemon
// uses it so an edit that flips the opt-in flag takes effect on the next
// refresh without a reload step; one-shot commands use the cheaper FileStore.
type LiveStore struct {
	paths []string
}

var _ Store = (*LiveStore)(nil)

// NewLiveStore creates a live store over the given property files.
func NewLiveStore(paths ...string) *LiveStore {
	return &LiveStore{paths: paths}
}

func (l *LiveStore) Lookup(key string) (string, bool) {
	store, err := LoadFiles(l.paths...)
	if err != nil {
		// An unreadable file mid-edit reads as "property absent", which
		// fails safe: the disabled provider variant.
		slog.Warn("Property files unreadable", "error", err)
		return "", false
	}
	return store.Lookup(key)
}
