// Package inertia mounts server-driven pages as Go components.
//
// A backend describes every page as a payload (component name, props, URL,
// asset version). CreateApp resolves the named component and hands the
// hosting App to a setup function, either for a one-shot server render or
// for a live mounted instance that later swaps pages on navigation.
//
// Usage:
//
//	reg := resolve.NewRegistry(pages.Home, pages.UsersIndex)
//
//	res, err := inertia.CreateApp(ctx, inertia.Options{
//	    Resolve: reg.Resolve,
//	    Page:    p,
//	    Render:  inertia.RenderHTML,
//	    Title:   func(t string) string { return t + " - Acme" },
//	    Setup: func(ctx context.Context, o inertia.SetupOptions) (*vdom.VNode, error) {
//	        return o.App(o.Props).Node(), nil
//	    },
//	})
//	// res.Head holds the collected head tags, res.Body the markup.
package inertia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/net/html"

	inerr "github.com/vango-dev/inertia/internal/errors"
	"github.com/vango-dev/inertia/pkg/head"
	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/progress"
	"github.com/vango-dev/inertia/pkg/render"
	"github.com/vango-dev/inertia/pkg/resolve"
	"github.com/vango-dev/inertia/pkg/router"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// DefaultID is the id of the mount element when Options.ID is empty.
const DefaultID = "app"

// ErrInvalidOptions is returned when required options are missing.
var ErrInvalidOptions = errors.New("inertia: invalid options")

// SetupFunc mounts the App. In server mode it returns the node to render.
type SetupFunc func(ctx context.Context, o SetupOptions) (*vdom.VNode, error)

// RenderFunc renders a node to markup. A non-nil RenderFunc selects server mode.
type RenderFunc func(ctx context.Context, node *vdom.VNode) (string, error)

// SetupOptions is passed to SetupFunc.
type SetupOptions struct {
	// El is the mount element found in Options.Document, or nil.
	El *html.Node

	// App builds the hosting component.
	App AppFunc

	// Props are the props for App.
	Props AppProps
}

// Options configures CreateApp.
type Options struct {
	// ID of the mount element. Defaults to DefaultID.
	ID string

	// Resolve maps component names to components. Required.
	Resolve resolve.Func

	// Setup mounts the app. Required.
	Setup SetupFunc

	// Title transforms page titles.
	Title head.TitleFunc

	// Progress configures the visit progress bar in client mode.
	// Nil uses progress.DefaultConfig.
	Progress *progress.Config

	// OnProgress observes the progress bar.
	OnProgress func(progress.State)

	// OnHeadUpdate receives head tags in client mode.
	OnHeadUpdate head.UpdateFunc

	// Page is the initial page. PageJSON is used when Page is nil.
	Page     *page.Page
	PageJSON string

	// Document is the HTML document the client mounts into. Without an
	// explicit page the payload is read from its #{ID}-data element.
	Document io.Reader

	// Render selects server mode.
	Render RenderFunc

	// Router drives navigation. Defaults to router.NewMemory().
	Router router.Router

	Logger *slog.Logger
}

// Result is the outcome of CreateApp.
type Result struct {
	// Head holds the head tags collected during a server render.
	Head []string

	// Body is the server-rendered markup.
	Body string

	// Node is the node returned by Setup.
	Node *vdom.VNode

	// App is the hosting component, when Setup built one.
	App *App

	// Progress is the client-mode progress bar, nil when disabled.
	Progress *progress.Indicator
}

// CreateApp resolves the initial component and mounts the app.
func CreateApp(ctx context.Context, opts Options) (*Result, error) {
	if opts.Resolve == nil {
		return nil, invalidOptions("Resolve is required")
	}
	if opts.Setup == nil {
		return nil, invalidOptions("Setup is required")
	}
	id := opts.ID
	if id == "" {
		id = DefaultID
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "inertia")
	}
	isServer := opts.Render != nil

	var doc *html.Node
	if !isServer && opts.Document != nil {
		var err error
		if doc, err = html.Parse(opts.Document); err != nil {
			return nil, fmt.Errorf("inertia: parse document: %w", err)
		}
	}

	initial, err := initialPage(opts, doc, id)
	if err != nil {
		return nil, err
	}
	if isServer && initial == nil {
		return nil, invalidOptions("server rendering requires Page or PageJSON")
	}
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("inertia: initial page: %w", err)
	}

	resolveComponent := resolve.Component(opts.Resolve)
	component, err := resolveComponent(ctx, initial.Component)
	if err != nil {
		return nil, fmt.Errorf("inertia: resolve initial component: %w", err)
	}

	var headTags []string
	onHeadUpdate := opts.OnHeadUpdate
	if isServer {
		onHeadUpdate = func(elements []string) {
			headTags = elements
			if opts.OnHeadUpdate != nil {
				opts.OnHeadUpdate(elements)
			}
		}
	}

	var app *App
	so := SetupOptions{
		App: func(p AppProps) *App {
			app = NewApp(p)
			return app
		},
		Props: AppProps{
			InitialPage:      initial,
			InitialComponent: component,
			ResolveComponent: router.ResolveFunc(resolveComponent),
			TitleCallback:    opts.Title,
			OnHeadUpdate:     onHeadUpdate,
			Router:           opts.Router,
			Server:           isServer,
			Logger:           logger,
		},
	}
	if doc != nil {
		so.El = page.FindElement(doc, id)
	}

	node, err := opts.Setup(ctx, so)
	if err != nil {
		return nil, inerr.New("E021").WithDetail(err.Error()).Wrap(err)
	}
	res := &Result{Node: node, App: app}

	if !isServer {
		cfg := progress.DefaultConfig()
		if opts.Progress != nil {
			cfg = *opts.Progress
		}
		if !cfg.Disabled {
			r := opts.Router
			if app != nil {
				r = app.Router()
			}
			if r != nil {
				res.Progress = progress.Setup(r, cfg, opts.OnProgress)
			}
		}
		logger.Debug("app mounted", "component", initial.Component, "url", initial.URL)
		return res, nil
	}

	encoded, err := page.Encode(initial)
	if err != nil {
		return nil, err
	}
	wrapped := vdom.Fragment(
		vdom.Div(vdom.ID(id), node),
		vdom.Div(vdom.ID(page.DataElementID(id)), vdom.Attribute(page.DataAttribute, encoded)),
	)
	body, err := opts.Render(ctx, wrapped)
	if err != nil {
		return nil, inerr.New("E022").WithDetail(err.Error()).Wrap(err)
	}
	res.Head = headTags
	res.Body = body
	return res, nil
}

// RenderHTML renders node with the default renderer.
func RenderHTML(_ context.Context, node *vdom.VNode) (string, error) {
	return render.NewRenderer(render.RendererConfig{}).RenderToString(node)
}

// initialPage returns the explicit page, else the payload embedded in doc.
func initialPage(opts Options, doc *html.Node, id string) (*page.Page, error) {
	switch {
	case opts.Page != nil:
		return opts.Page, nil
	case opts.PageJSON != "":
		return page.ParseJSON([]byte(opts.PageJSON))
	case doc != nil:
		return page.FromDocument(doc, id)
	case opts.Render != nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: no page and no document", page.ErrPayloadMissing)
	}
}

func invalidOptions(detail string) error {
	return inerr.New("E020").WithDetail(detail).Wrap(ErrInvalidOptions)
}
