package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/inertia/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("container"), vdom.ID("app"),
		vdom.H1(vdom.Text("Title")),
		vdom.P(vdom.Text("Content")),
	)
	html, err := renderer.RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `<div class="container" id="app"><h1>Title</h1><p>Content</p></div>`
	if html != want {
		t.Errorf("got %q, want %q", html, want)
	}
}

func TestRenderVoidAndBoolean(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "meta",
			node: vdom.Meta(vdom.Name("description"), vdom.Content("A \"quoted\" page")),
			want: `<meta content="A &quot;quoted&quot; page" name="description">`,
		},
		{
			name: "br",
			node: vdom.Br(),
			want: `<br>`,
		},
		{
			name: "defer script",
			node: vdom.Script(vdom.Src("/app.js"), vdom.Defer()),
			want: `<script defer src="/app.js"></script>`,
		},
		{
			name: "key is not rendered",
			node: vdom.Li(vdom.Key("a"), vdom.Text("x")),
			want: `<li>x</li>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderComponentIsLazy(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	calls := 0
	node := vdom.Fragment(vdom.Func(func() *vdom.VNode {
		calls++
		return vdom.Span(vdom.Textf("call %d", calls))
	}))

	first, _ := renderer.RenderToString(node)
	second, _ := renderer.RenderToString(node)

	if first != "<span>call 1</span>" || second != "<span>call 2</span>" {
		t.Errorf("got %q then %q", first, second)
	}
}

func TestRenderRaw(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	got, err := renderer.RenderToString(vdom.Div(vdom.Raw("<b>trusted</b>")))
	if err != nil {
		t.Fatal(err)
	}
	if got != "<div><b>trusted</b></div>" {
		t.Errorf("got %q", got)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})
	got, err := renderer.RenderToString(vdom.Div(vdom.Span(vdom.Text("x"))))
	if err != nil {
		t.Fatal(err)
	}
	if got != "<div>\n  <span>x</span>\n</div>\n" {
		t.Errorf("got %q", got)
	}
}

func TestRenderDocument(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	var buf bytes.Buffer
	err := renderer.RenderDocument(&buf, Document{
		Head:        []string{`<title inertia>Home</title>`},
		Body:        `<div id="app"></div>`,
		StyleSheets: []string{"/app.css"},
		Scripts:     []ScriptTag{{Src: "/app.js", Module: true}},
	})
	if err != nil {
		t.Fatalf("RenderDocument() error = %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		`  <title inertia>Home</title>`,
		`<link rel="stylesheet" href="/app.css">`,
		`<div id="app"></div>`,
		`<script src="/app.js" type="module"></script>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("document missing %q:\n%s", want, html)
		}
	}
	if strings.Index(html, "</head>") > strings.Index(html, `<div id="app">`) {
		t.Error("body rendered before head")
	}
}
