package mount

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vango-dev/inertia/pkg/head"
	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/pagectx"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// State is the displayed state of a mounted app.
type State struct {
	Component *Component
	Page      *page.Page
	Key       string
}

// SwapEvent is a navigation-triggered replacement of the displayed state.
type SwapEvent struct {
	Component     *Component
	Page          *page.Page
	PreserveState bool
}

// KeyFunc generates remount keys.
type KeyFunc func() string

// ChildrenArgs is passed to a ChildrenFunc.
type ChildrenArgs struct {
	Component *Component
	Key       string
	Props     page.Props
	Scope     *pagectx.Scope
}

// ChildrenFunc builds the element tree for the displayed component.
type ChildrenFunc func(ChildrenArgs) *vdom.VNode

// DefaultChildren renders the component under its remount key and applies its layout.
func DefaultChildren(a ChildrenArgs) *vdom.VNode {
	child := vdom.Comp(&instance{component: a.Component, scope: a.Scope, props: a.Props}, a.Key)
	return a.Component.Layout.Apply(child, a.Props)
}

// Controller owns the displayed state and the last built element.
type Controller struct {
	mu       sync.Mutex
	state    State
	memo     memo
	scope    *pagectx.Scope
	heads    *head.Manager
	provider *head.Provider
	keys     KeyFunc
	children ChildrenFunc
	logger   *slog.Logger
}

// memo is the previous render: the component it was built for and its element.
type memo struct {
	component *Component
	element   *vdom.VNode
}

// Option configures a Controller.
type Option func(*Controller)

// WithHead connects the displayed page to a head manager.
func WithHead(m *head.Manager) Option {
	return func(c *Controller) {
		c.heads = m
	}
}

// WithKeyFunc sets the remount key generator.
func WithKeyFunc(fn KeyFunc) Option {
	return func(c *Controller) {
		c.keys = fn
	}
}

// WithChildren overrides DefaultChildren.
func WithChildren(fn ChildrenFunc) Option {
	return func(c *Controller) {
		c.children = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller displaying initial with page p.
// The initial remount key is empty.
func NewController(initial *Component, p *page.Page, opts ...Option) *Controller {
	c := &Controller{
		state:  State{Component: initial, Page: p},
		keys:   uuid.NewString,
		logger: slog.Default().With("component", "mount"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.scope = pagectx.NewScope(p, nil)
	return c
}

// Swap replaces the displayed state.
func (c *Controller) Swap(ev SwapEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state
	key := prev.Key
	if !ev.PreserveState {
		key = c.nextKey(prev.Key)
	}
	c.state = State{Component: ev.Component, Page: ev.Page, Key: key}
	c.scope.SetPage(ev.Page)

	c.logger.Debug("swap",
		"from", componentName(prev.Component),
		"to", componentName(ev.Component),
		"preserve_state", ev.PreserveState)
}

// nextKey returns a key different from prev.
func (c *Controller) nextKey(prev string) string {
	key := c.keys()
	for i := 0; key == prev && i < 8; i++ {
		key = c.keys()
	}
	if key == prev {
		key = uuid.NewString()
	}
	return key
}

// State returns the displayed state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Scope returns the page scope handed to page content.
func (c *Controller) Scope() *pagectx.Scope {
	return c.scope
}

// Render returns the element tree for the displayed state, or nil when no
// component is displayed.
func (c *Controller) Render() *vdom.VNode {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := c.state.Component
	if current == nil {
		return nil
	}
	if c.memo.element != nil && c.memo.component == current {
		return c.memo.element
	}

	c.reconnectHead()

	var props page.Props
	if c.state.Page != nil {
		props = c.state.Page.Props
	}
	args := ChildrenArgs{Component: current, Key: c.state.Key, Props: props, Scope: c.scope}

	build := c.children
	if build == nil {
		build = DefaultChildren
	}
	element := build(args)
	c.memo = memo{component: current, element: element}
	return element
}

// Close disconnects the displayed page from the head manager.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.provider != nil {
		c.provider.Disconnect()
		c.provider = nil
	}
	c.scope.SetHead(nil)
	c.memo = memo{}
}

// reconnectHead gives a rebuilt page a fresh head provider. Caller holds c.mu.
func (c *Controller) reconnectHead() {
	if c.heads == nil {
		return
	}
	if c.provider != nil {
		c.provider.Disconnect()
	}
	c.provider = c.heads.CreateProvider()
	c.scope.SetHead(c.provider)
}

func componentName(c *Component) string {
	if c == nil {
		return ""
	}
	return c.Name
}
