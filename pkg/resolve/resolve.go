// Package resolve turns component names from page payloads into components.
//
// A resolver may return a *mount.Component directly or a Module wrapping one
// (the "default export" shape); Normalize accepts both. Registry is the
// in-process resolver most apps use.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	inerr "github.com/vango-dev/inertia/internal/errors"
	"github.com/vango-dev/inertia/pkg/mount"
)

var (
	// ErrComponentNotFound is returned when no component has the requested name.
	ErrComponentNotFound = errors.New("resolve: component not found")

	// ErrUnsupported is returned when a resolver yields neither a component nor a module.
	ErrUnsupported = errors.New("resolve: unsupported resolver result")
)

// Func resolves a component name. The result is a *mount.Component or a Module.
type Func func(ctx context.Context, name string) (any, error)

// ComponentFunc resolves a component name to a component.
type ComponentFunc func(ctx context.Context, name string) (*mount.Component, error)

// Module wraps a component as its default export.
type Module interface {
	Default() *mount.Component
}

// Normalize extracts the component from a resolver result.
func Normalize(v any) (*mount.Component, error) {
	switch m := v.(type) {
	case *mount.Component:
		if m != nil {
			return m, nil
		}
	case Module:
		if c := m.Default(); c != nil {
			return c, nil
		}
	}
	return nil, inerr.New("E003").
		WithDetail(fmt.Sprintf("resolver returned %T", v)).
		WithSuggestion("return a *mount.Component or a value with a Default() *mount.Component method").
		Wrap(ErrUnsupported)
}

// Component adapts fn to return normalized components.
func Component(fn Func) ComponentFunc {
	return func(ctx context.Context, name string) (*mount.Component, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := fn(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", name, err)
		}
		return Normalize(v)
	}
}

// Registry maps component names to components.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*mount.Component
}

// NewRegistry creates a registry holding components under their names.
func NewRegistry(components ...*mount.Component) *Registry {
	r := &Registry{components: make(map[string]*mount.Component)}
	for _, c := range components {
		r.Register(c)
	}
	return r
}

// Register adds c under c.Name, replacing any previous component.
func (r *Registry) Register(c *mount.Component) {
	if c == nil {
		return
	}
	r.mu.Lock()
	r.components[c.Name] = c
	r.mu.Unlock()
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the component registered as name.
func (r *Registry) Lookup(ctx context.Context, name string) (*mount.Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	c, ok := r.components[name]
	r.mu.RUnlock()
	if ok {
		return c, nil
	}

	e := inerr.New("E002").
		WithDetail(fmt.Sprintf("no component is registered as %q", name)).
		Wrap(ErrComponentNotFound)
	if s := r.suggest(name); s != "" {
		e.WithSuggestion(fmt.Sprintf("did you mean %q?", s))
	}
	return nil, e
}

// Resolve implements Func.
func (r *Registry) Resolve(ctx context.Context, name string) (any, error) {
	return r.Lookup(ctx, name)
}

// suggest returns the closest registered name within a third of its length.
func (r *Registry) suggest(name string) string {
	best, bestDist := "", -1
	for _, candidate := range r.Names() {
		d := levenshtein.ComputeDistance(name, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	limit := len(name) / 3
	if limit < 2 {
		limit = 2
	}
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}
