package assets

import (
	"strings"

	"github.com/vango-dev/inertia/pkg/render"
)

// Resolver turns source asset names into URLs.
type Resolver interface {
	// Asset resolves a source asset to its URL path, e.g.
	// "app.js" → "/build/app.a1b2c3d4.js".
	Asset(source string) string
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver that prefixes fingerprinted paths.
func NewResolver(m *Manifest, prefix string) Resolver {
	return &manifestResolver{manifest: m, prefix: prefix}
}

func (r *manifestResolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}

type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a resolver that only applies prefix.
// Used in development where assets are not fingerprinted.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: prefix}
}

func (p *passthrough) Asset(source string) string {
	return p.prefix + source
}

// Entrypoints splits sources into stylesheet URLs and module script tags
// for a document.
func Entrypoints(r Resolver, sources ...string) (styleSheets []string, scripts []render.ScriptTag) {
	for _, src := range sources {
		url := r.Asset(src)
		if strings.HasSuffix(src, ".css") {
			styleSheets = append(styleSheets, url)
			continue
		}
		scripts = append(scripts, render.ScriptTag{Src: url, Module: true})
	}
	return styleSheets, scripts
}
