package assets

import (
	"reflect"
	"testing"

	"github.com/vango-dev/inertia/pkg/render"
)

func TestResolver(t *testing.T) {
	m := NewManifest(map[string]string{"app.js": "app.abc.js"})

	tests := []struct {
		name     string
		resolver Resolver
		source   string
		want     string
	}{
		{"manifest with prefix", NewResolver(m, "/build/"), "app.js", "/build/app.abc.js"},
		{"manifest miss", NewResolver(m, "/build/"), "other.js", "/build/other.js"},
		{"no prefix", NewResolver(m, ""), "app.js", "app.abc.js"},
		{"passthrough", NewPassthroughResolver("/src/"), "app.js", "/src/app.js"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resolver.Asset(tt.source); got != tt.want {
				t.Errorf("Asset(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestEntrypoints(t *testing.T) {
	r := NewResolver(NewManifest(map[string]string{"app.js": "app.1.js", "app.css": "app.2.css"}), "/b/")
	css, scripts := Entrypoints(r, "app.css", "app.js")

	if !reflect.DeepEqual(css, []string{"/b/app.2.css"}) {
		t.Errorf("styleSheets = %v", css)
	}
	want := []render.ScriptTag{{Src: "/b/app.1.js", Module: true}}
	if !reflect.DeepEqual(scripts, want) {
		t.Errorf("scripts = %+v", scripts)
	}
}
