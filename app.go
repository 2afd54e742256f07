package inertia

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vango-dev/inertia/pkg/head"
	"github.com/vango-dev/inertia/pkg/mount"
	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/router"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// AppFunc builds the hosting component.
type AppFunc func(AppProps) *App

// AppProps configure the hosting component.
type AppProps struct {
	InitialPage      *page.Page
	InitialComponent *mount.Component
	ResolveComponent router.ResolveFunc
	TitleCallback    head.TitleFunc
	OnHeadUpdate     head.UpdateFunc

	// Router defaults to router.NewMemory().
	Router router.Router

	// Server selects one-shot server rendering. The router is not
	// initialized on the server.
	Server bool

	// Children overrides mount.DefaultChildren.
	Children mount.ChildrenFunc

	Logger *slog.Logger
}

// App hosts the displayed page: it owns the head manager, the mount
// controller and the router registration.
type App struct {
	heads  *head.Manager
	ctrl   *mount.Controller
	router router.Router
	logger *slog.Logger

	mu  sync.Mutex
	off func()
}

// NewApp creates the hosting component.
func NewApp(p AppProps) *App {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default().With("component", "inertia")
	}
	r := p.Router
	if r == nil {
		r = router.NewMemory(router.WithLogger(logger))
	}

	heads := head.NewManager(p.Server, p.TitleCallback, p.OnHeadUpdate, head.WithLogger(logger))
	opts := []mount.Option{mount.WithHead(heads), mount.WithLogger(logger)}
	if p.Children != nil {
		opts = append(opts, mount.WithChildren(p.Children))
	}
	a := &App{
		heads:  heads,
		ctrl:   mount.NewController(p.InitialComponent, p.InitialPage, opts...),
		router: r,
		logger: logger,
	}

	if !p.Server {
		r.Init(router.InitOptions{
			InitialPage: p.InitialPage,
			Resolve:     p.ResolveComponent,
			Swap: func(_ context.Context, ev mount.SwapEvent) error {
				a.ctrl.Swap(ev)
				return nil
			},
		})
		a.off = r.On(router.EventNavigate, func(router.Detail) {
			heads.ForceUpdate()
		})
	}
	return a
}

// Render implements vdom.Component. It returns nil while no component is displayed.
func (a *App) Render() *vdom.VNode {
	return a.ctrl.Render()
}

// Node returns the app as a lazily rendered node.
func (a *App) Node() *vdom.VNode {
	return vdom.Comp(a, "")
}

// State returns the displayed state.
func (a *App) State() mount.State {
	return a.ctrl.State()
}

// Router returns the router the app is registered with.
func (a *App) Router() router.Router {
	return a.router
}

// Heads returns the head manager.
func (a *App) Heads() *head.Manager {
	return a.heads
}

// Unmount unsubscribes from the router and disconnects the displayed page.
func (a *App) Unmount() {
	a.mu.Lock()
	off := a.off
	a.off = nil
	a.mu.Unlock()
	if off != nil {
		off()
	}
	a.ctrl.Close()
	if !a.heads.IsServer() {
		a.heads.Close()
	}
}
