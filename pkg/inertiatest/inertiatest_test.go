package inertiatest

import (
	"strings"
	"testing"

	"github.com/vango-dev/inertia/pkg/head"
	"github.com/vango-dev/inertia/pkg/mount"
	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/pagectx"
	"github.com/vango-dev/inertia/pkg/resolve"
	"github.com/vango-dev/inertia/pkg/vdom"
)

var greeting = mount.New("Greeting", func(s *pagectx.Scope, props page.Props) *vdom.VNode {
	s.Head(head.Title("Hello"))
	return vdom.P(vdom.Textf("hello %v", props["name"]))
})

var farewell = mount.New("Farewell", func(s *pagectx.Scope, props page.Props) *vdom.VNode {
	s.Head(head.Title("Bye"))
	return vdom.P(vdom.Text("bye"))
})

func TestRender(t *testing.T) {
	res := Render(t, greeting, page.Props{"name": "Ada"}, WithURL("/hello"), WithID("root"))

	ExpectContains(t, res, `<div id="root"><p>hello Ada</p></div>`)
	ExpectNotContains(t, res, "bye")
	ExpectElement(t, res, "p")
	ExpectHead(t, res, "<title inertia>Hello</title>")

	embedded, err := page.ReadEmbedded(strings.NewReader(res.Body), "root")
	if err != nil {
		t.Fatalf("embedded page: %v", err)
	}
	if embedded.URL != "/hello" || embedded.Component != "Greeting" {
		t.Errorf("embedded = %+v", embedded)
	}
}

func TestRenderTitle(t *testing.T) {
	res := Render(t, greeting, nil, WithTitle(func(s string) string { return s + " | Site" }))
	ExpectHead(t, res, "<title inertia>Hello | Site</title>")
}

func TestClient(t *testing.T) {
	c := NewClient(t, resolve.NewRegistry(greeting, farewell), &page.Page{
		Component: "Greeting",
		Props:     page.Props{"name": "Ada"},
		URL:       "/",
	})
	if got := c.HTML(); got != "<p>hello Ada</p>" {
		t.Errorf("HTML() = %q", got)
	}

	c.Visit("Farewell", nil)
	if got := c.State().Component.Name; got != "Farewell" {
		t.Errorf("component = %q, want Farewell", got)
	}
	if got := c.HTML(); got != "<p>bye</p>" {
		t.Errorf("HTML() after visit = %q", got)
	}
	head := c.Head()
	if len(head) != 1 || head[0] != "<title inertia>Bye</title>" {
		t.Errorf("Head() = %q", head)
	}
}
