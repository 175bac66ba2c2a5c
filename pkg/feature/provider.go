package feature

import (
	"context"
	"sort"
)

// Provider resolves feature flags. Implementations must be safe for
// concurrent use.
type Provider interface {
	// GetFlag returns the named flag or ErrFlagNotFound.
	GetFlag(ctx context.Context, name string) (Flag, error)

	// IsEnabled reports whether the named flag is active for a client in the
	// given bucket. It returns nil when active, or the sentinel describing
	// why not: ErrFlagNotFound, ErrFlagDisabled, ErrNotInRollout, or
	// ErrAuthRequired.
	IsEnabled(ctx context.Context, name string, bucket int, authenticated bool) error

	// ListFlags returns all known flags sorted by name.
	ListFlags(ctx context.Context) ([]Flag, error)
}

// StaticProvider serves an immutable flag set built once at construction.
// It has no mutable state, so reads need no locking.
type StaticProvider struct {
	flags map[string]Flag
	names []string
}

// NewStaticProvider builds a provider from the given flags. Rollout values
// are clamped to 0..100; when two flags share a name the later one wins.
func NewStaticProvider(flags ...Flag) *StaticProvider {
	m := make(map[string]Flag, len(flags))
	for _, f := range flags {
		if f.Rollout < 0 {
			f.Rollout = 0
		}
		if f.Rollout > 100 {
			f.Rollout = 100
		}
		m[f.Name] = f
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	return &StaticProvider{flags: m, names: names}
}

func (p *StaticProvider) GetFlag(ctx context.Context, name string) (Flag, error) {
	f, ok := p.flags[name]
	if !ok {
		return Flag{}, ErrFlagNotFound
	}
	return f, nil
}

func (p *StaticProvider) IsEnabled(ctx context.Context, name string, bucket int, authenticated bool) error {
	f, ok := p.flags[name]
	if !ok {
		return ErrFlagNotFound
	}
	if !f.Enabled {
		return ErrFlagDisabled
	}
	if !f.InRollout(bucket) {
		return ErrNotInRollout
	}
	if f.RequiresAuth && !authenticated {
		return ErrAuthRequired
	}
	return nil
}

func (p *StaticProvider) ListFlags(ctx context.Context) ([]Flag, error) {
	out := make([]Flag, 0, len(p.names))
	for _, name := range p.names {
		out = append(out, p.flags[name])
	}
	return out, nil
}
