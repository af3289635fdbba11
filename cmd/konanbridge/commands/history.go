package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/smart24/kotlin-native/internal/errors"
	"github.com/smart24/kotlin-native/internal/journal"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int  `help:"Maximum number of entries to show" default:"20"`
	JSON  bool `help:"Print entries as JSON"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if !cfg.Journal.IsEnabled() {
		return errors.ValidationFailed("journalling is disabled in configuration")
	}

	store, err := journal.NewSQLiteStore(cfg.Journal.Path)
	if err != nil {
		return errors.JournalUnavailable(err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(rootContext(), h.Limit)
	if err != nil {
		return errors.JournalUnavailable(err)
	}

	return printEntries(os.Stdout, entries, h.JSON)
}

func printEntries(w io.Writer, entries []journal.Entry, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No resolutions recorded yet")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %-7s  %-11s", e.ResolvedAt.Format(time.RFC3339), e.Outcome, e.Source)
		if e.Outcome == journal.OutcomeOK {
			dir := e.OutputDir
			if dir == "" {
				dir = "(unset)"
			}
			line += fmt.Sprintf("  dir=%s debug=%v opt=%v", dir, e.DebugSymbols, e.Optimizations)
		} else {
			line += "  " + e.Error
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
