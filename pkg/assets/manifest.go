// Package assets resolves fingerprinted asset paths and derives the asset
// version sent with every page payload.
//
// A build step writes a manifest mapping source asset names to their
// fingerprinted versions:
//
//	{
//	  "app.js": "app.a1b2c3d4.js",
//	  "app.css": "app.e5f6a7b8.css"
//	}
//
// The manifest's Version changes whenever any entry changes, so clients
// holding stale assets get a 409 and reload. Manifests load from disk or
// S3, and Watch keeps a file manifest current during development:
//
//	m, _ := assets.Load("dist/manifest.json")
//	go m.Watch(ctx, "dist/manifest.json", nil)
//	r := assets.NewResolver(m, "/build/")
//	r.Asset("app.js") // "/build/app.a1b2c3d4.js"
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sync"
)

// ErrInvalidManifest is returned for manifests that are not a JSON string map.
var ErrInvalidManifest = errors.New("assets: invalid manifest")

// Manifest maps source asset paths to fingerprinted paths.
// It is safe for concurrent use.
type Manifest struct {
	mu      sync.RWMutex
	entries map[string]string
	version string
}

// NewManifest creates a manifest holding entries.
func NewManifest(entries map[string]string) *Manifest {
	m := &Manifest{}
	m.Replace(entries)
	return m
}

// Parse decodes a JSON manifest.
func Parse(data []byte) (*Manifest, error) {
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	return NewManifest(entries), nil
}

// Load reads a JSON manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("assets: read manifest: %w", err)
	}
	return Parse(data)
}

// Replace swaps in a new set of entries.
func (m *Manifest) Replace(entries map[string]string) {
	cp := maps.Clone(entries)
	if cp == nil {
		cp = make(map[string]string)
	}
	v := version(cp)

	m.mu.Lock()
	m.entries = cp
	m.version = v
	m.mu.Unlock()
}

// Version returns a digest of the entries. Empty manifests have an empty version.
func (m *Manifest) Version() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}

// Resolve returns the fingerprinted path for source, or source when absent.
func (m *Manifest) Resolve(source string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if resolved, ok := m.entries[source]; ok {
		return resolved
	}
	return source
}

// Has reports whether source has an entry.
func (m *Manifest) Has(source string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[source]
	return ok
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// All returns a copy of the entries.
func (m *Manifest) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.entries)
}

// version hashes the entries in sorted key order.
func version(entries map[string]string) string {
	if len(entries) == 0 {
		return ""
	}
	h := sha256.New()
	for _, k := range slices.Sorted(maps.Keys(entries)) {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(entries[k]))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
