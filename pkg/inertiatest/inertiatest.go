package inertiatest

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/inertia"
	"github.com/vango-dev/inertia/pkg/head"
	"github.com/vango-dev/inertia/pkg/mount"
	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/progress"
	"github.com/vango-dev/inertia/pkg/resolve"
	"github.com/vango-dev/inertia/pkg/router"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// Result is a server render of one component.
type Result struct {
	Page *page.Page
	Head []string
	Body string
}

type options struct {
	url   string
	id    string
	title head.TitleFunc
}

// Option configures Render.
type Option func(*options)

// WithURL sets the page URL. Default: "/".
func WithURL(url string) Option {
	return func(o *options) { o.url = url }
}

// WithID sets the mount element id.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithTitle sets the title callback.
func WithTitle(fn head.TitleFunc) Option {
	return func(o *options) { o.title = fn }
}

// Render server-renders c with props. It fails the test on error.
func Render(t testing.TB, c *mount.Component, props page.Props, opts ...Option) *Result {
	t.Helper()
	o := options{url: "/"}
	for _, opt := range opts {
		opt(&o)
	}

	p := &page.Page{Component: c.Name, Props: props, URL: o.url}
	res, err := inertia.CreateApp(context.Background(), inertia.Options{
		ID:      o.id,
		Resolve: resolve.NewRegistry(c).Resolve,
		Setup:   mountApp,
		Title:   o.title,
		Page:    p,
		Render:  inertia.RenderHTML,
	})
	if err != nil {
		t.Fatalf("render %s: %v", c.Name, err)
	}
	return &Result{Page: p, Head: res.Head, Body: res.Body}
}

func mountApp(_ context.Context, o inertia.SetupOptions) (*vdom.VNode, error) {
	return o.App(o.Props).Node(), nil
}

// ExpectContains fails when the body does not contain s.
func ExpectContains(t testing.TB, r *Result, s string) {
	t.Helper()
	if !strings.Contains(r.Body, s) {
		t.Errorf("expected body to contain %q, got:\n%s", s, truncate(r.Body, 500))
	}
}

// ExpectNotContains fails when the body contains s.
func ExpectNotContains(t testing.TB, r *Result, s string) {
	t.Helper()
	if strings.Contains(r.Body, s) {
		t.Errorf("expected body to NOT contain %q, got:\n%s", s, truncate(r.Body, 500))
	}
}

// ExpectElement fails when the body has no tag element.
func ExpectElement(t testing.TB, r *Result, tag string) {
	t.Helper()
	if !strings.Contains(r.Body, "<"+tag+">") && !strings.Contains(r.Body, "<"+tag+" ") {
		t.Errorf("expected body to contain <%s> element, got:\n%s", tag, truncate(r.Body, 500))
	}
}

// ExpectHead fails when no head tag equals tag.
func ExpectHead(t testing.TB, r *Result, tag string) {
	t.Helper()
	for _, h := range r.Head {
		if h == tag {
			return
		}
	}
	t.Errorf("expected head tag %s, got %q", tag, r.Head)
}

// Client is a client-mode mount driven by an in-memory router.
type Client struct {
	t      testing.TB
	app    *inertia.App
	router *router.Memory
}

// NewClient mounts the initial page in client mode. The mount is torn down
// when the test ends.
func NewClient(t testing.TB, reg *resolve.Registry, initial *page.Page) *Client {
	t.Helper()
	mem := router.NewMemory()
	res, err := inertia.CreateApp(context.Background(), inertia.Options{
		Resolve:  reg.Resolve,
		Setup:    mountApp,
		Page:     initial,
		Router:   mem,
		Progress: &progress.Config{Disabled: true},
	})
	if err != nil {
		t.Fatalf("mount %s: %v", initial.Component, err)
	}
	t.Cleanup(res.App.Unmount)
	return &Client{t: t, app: res.App, router: mem}
}

// Visit navigates to component with props. The URL defaults to the current one.
func (c *Client) Visit(component string, props page.Props) {
	c.t.Helper()
	c.VisitPage(&page.Page{Component: component, Props: props, URL: c.State().Page.URL})
}

// VisitPage navigates to p, remounting the component.
func (c *Client) VisitPage(p *page.Page) {
	c.t.Helper()
	if err := c.router.Visit(context.Background(), p, router.VisitOptions{}); err != nil {
		c.t.Fatalf("visit %s: %v", p.Component, err)
	}
}

// State returns the mounted component and page.
func (c *Client) State() mount.State {
	return c.app.State()
}

// HTML renders the mounted component.
func (c *Client) HTML() string {
	c.t.Helper()
	html, err := inertia.RenderHTML(context.Background(), c.app.Node())
	if err != nil {
		c.t.Fatalf("render: %v", err)
	}
	return html
}

// Head renders the mounted component and returns the committed head tags.
func (c *Client) Head() []string {
	c.t.Helper()
	c.HTML()
	c.app.Heads().Flush()
	return c.app.Heads().Elements()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
