package xcodeenv

// Config is a resolved snapshot of the bridged build settings. Unlike a
// Provider it does not track the live environment: it holds whatever the
// provider answered at the moment Resolve ran.
type Config struct {
	// BuildOutputDir is the absolute products directory, or "" when unset.
	BuildOutputDir string

	DebugSymbolsEnabled  bool
	OptimizationsEnabled bool
}

// Resolve reads all three settings through the provider. Two consecutive
// calls under an unchanged environment return identical values.
func Resolve(p Provider) (Config, error) {
	dir, err := p.BuildOutputDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		BuildOutputDir:       dir,
		DebugSymbolsEnabled:  p.DebugSymbolsEnabled(),
		OptimizationsEnabled: p.OptimizationsEnabled(),
	}, nil
}
