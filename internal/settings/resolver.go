package settings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smart24/kotlin-native/internal/errors"
	"github.com/smart24/kotlin-native/internal/foundation"
	"github.com/smart24/kotlin-native/internal/properties"
	"github.com/smart24/kotlin-native/internal/xcodeenv"
)

// Resolver selects the provider variant from the opt-in project property and
// turns one resolution pass into a BuildSettings value.
type Resolver struct {
	props  properties.Store
	lookup xcodeenv.LookupFunc
	now    func() time.Time
	newID  func() string
}

// ResolverOption customizes a Resolver, mainly for tests.
type ResolverOption func(*Resolver)

// WithLookup injects the environment lookup used by the enabled provider.
func WithLookup(lookup xcodeenv.LookupFunc) ResolverOption {
	return func(r *Resolver) { r.lookup = lookup }
}

// WithClock injects the timestamp source.
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// WithIDGenerator injects the invocation-id source.
func WithIDGenerator(newID func() string) ResolverOption {
	return func(r *Resolver) { r.newID = newID }
}

// NewResolver creates a resolver over the given property store.
func NewResolver(props properties.Store, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		props: props,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve performs one resolution pass: read the opt-in flag, select the
// provider variant, read the three settings, stamp provenance. The returned
// error wraps *xcodeenv.InvalidConfigurationError when the environment holds
// a relative CONFIGURATION_BUILD_DIR.
func (r *Resolver) Resolve(ctx context.Context) (BuildSettings, error) {
	if err := ctx.Err(); err != nil {
		return BuildSettings{}, err
	}

	useEnv := properties.UseEnvironmentVariables(r.props)
	provider := xcodeenv.NewProviderWithLookup(useEnv, r.lookup)

	cfg, err := xcodeenv.Resolve(provider)
	if err != nil {
		return BuildSettings{}, errors.InvalidEnvironment(err)
	}

	s := BuildSettings{
		Source:        SourceDisabled,
		OutputDir:     foundation.None[string](),
		DebugSymbols:  cfg.DebugSymbolsEnabled,
		Optimizations: cfg.OptimizationsEnabled,
		InvocationID:  r.newID(),
		ResolvedAt:    r.now(),
	}
	if useEnv {
		s.Source = SourceEnvironment
	}
	if cfg.BuildOutputDir != "" {
		s.OutputDir = foundation.Some(cfg.BuildOutputDir)
	}
	s.Fingerprint = fingerprint(s)
	return s, nil
}
