package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/smart24/kotlin-native/internal/settings"
)

// EnvCmd implements the 'env' command.
type EnvCmd struct {
	JSON bool `help:"Print the resolved settings as JSON"`
}

func (e *EnvCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	resolver, err := newResolver(cfg)
	if err != nil {
		return err
	}

	resolved, err := resolver.Resolve(rootContext())
	if err != nil {
		return err
	}

	return printSettings(os.Stdout, resolved, e.JSON)
}

func printSettings(w io.Writer, s settings.BuildSettings, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}

	fmt.Fprintf(w, "source:         %s\n", s.Source)
	fmt.Fprintf(w, "output dir:     %s\n", s.OutputDir.UnwrapOr("(unset)"))
	fmt.Fprintf(w, "debug symbols:  %v\n", s.DebugSymbols)
	fmt.Fprintf(w, "optimizations:  %v\n", s.Optimizations)
	fmt.Fprintf(w, "fingerprint:    %s\n", s.Fingerprint)
	return nil
}
