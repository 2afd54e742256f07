package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/inertia/pkg/head"
	"github.com/vango-dev/inertia/pkg/mount"
	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/pagectx"
	"github.com/vango-dev/inertia/pkg/resolve"
	"github.com/vango-dev/inertia/pkg/server"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// PageTable is the YAML page table served by `inertia serve`.
//
//	pages:
//	  - path: /
//	    component: Home
//	    title: Welcome
//	    props:
//	      greeting: hello
type PageTable struct {
	Pages []PageEntry `yaml:"pages"`
}

// PageEntry declares one route.
type PageEntry struct {
	Path      string         `yaml:"path"`
	Component string         `yaml:"component"`
	Title     string         `yaml:"title"`
	Props     map[string]any `yaml:"props"`
}

// loadPageTable reads and validates a page table.
func loadPageTable(path string) (*PageTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t PageTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	seen := make(map[string]bool)
	for i, e := range t.Pages {
		if e.Path == "" || e.Path[0] != '/' {
			return nil, fmt.Errorf("page %d: path %q must start with /", i, e.Path)
		}
		if e.Component == "" {
			return nil, fmt.Errorf("page %d (%s): component is required", i, e.Path)
		}
		if seen[e.Path] {
			return nil, fmt.Errorf("page %d: duplicate path %s", i, e.Path)
		}
		seen[e.Path] = true
	}
	return &t, nil
}

// Registry returns a registry with a props-dump component per component name.
func (t *PageTable) Registry() *resolve.Registry {
	reg := resolve.NewRegistry()
	titles := make(map[string]string)
	for _, e := range t.Pages {
		if _, ok := titles[e.Component]; !ok {
			titles[e.Component] = e.Title
		}
	}
	for name, title := range titles {
		reg.Register(dumpComponent(name, title, t.Pages))
	}
	return reg
}

// Register adds every page to srv.
func (t *PageTable) Register(srv *server.Server) {
	for _, e := range t.Pages {
		props := page.Props(e.Props)
		srv.Page(e.Path, e.Component, func(*http.Request) (page.Props, error) {
			return props, nil
		})
	}
}

// dumpComponent renders its props as JSON under a navigation of all pages.
func dumpComponent(name, title string, pages []PageEntry) *mount.Component {
	if title == "" {
		title = name
	}
	links := make([]PageEntry, len(pages))
	copy(links, pages)
	sort.Slice(links, func(i, j int) bool { return links[i].Path < links[j].Path })

	return mount.New(name, func(s *pagectx.Scope, props page.Props) *vdom.VNode {
		s.Head(head.Title(title))
		body, err := json.MarshalIndent(props, "", "  ")
		if err != nil {
			body = []byte(err.Error())
		}
		return vdom.Main(
			vdom.Nav(vdom.Ul(vdom.Range(links, func(e PageEntry, _ int) *vdom.VNode {
				return vdom.Li(vdom.A(vdom.Href(e.Path), vdom.Text(e.Path)))
			}))),
			vdom.H1(vdom.Text(name)),
			vdom.Pre(vdom.Code(vdom.Text(string(body)))),
		)
	}, mount.WithLayout(mount.Single(func(children *vdom.VNode, _ page.Props) *vdom.VNode {
		return vdom.Div(vdom.Class("inertia-serve"), children)
	})))
}
