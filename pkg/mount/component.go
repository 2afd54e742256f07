package mount

import (
	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/pagectx"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// RenderFunc renders a page component.
type RenderFunc func(s *pagectx.Scope, props page.Props) *vdom.VNode

// LayoutFunc wraps rendered children.
type LayoutFunc func(children *vdom.VNode, props page.Props) *vdom.VNode

// LayoutKind tells how a component's layout applies.
type LayoutKind uint8

const (
	LayoutNone   LayoutKind = iota // page rendered bare
	LayoutSingle                   // one wrapping function
	LayoutChain                    // ordered layers, outermost first
)

// Layout is the layout capability of a component.
type Layout struct {
	kind LayoutKind
	fns  []LayoutFunc
}

// NoLayout renders the page without a wrapper.
func NoLayout() Layout {
	return Layout{}
}

// Single wraps the page once with fn.
func Single(fn LayoutFunc) Layout {
	if fn == nil {
		return Layout{}
	}
	return Layout{kind: LayoutSingle, fns: []LayoutFunc{fn}}
}

// Chain nests the page in layers, the first being outermost. Nil layers are skipped.
func Chain(fns ...LayoutFunc) Layout {
	layers := make([]LayoutFunc, 0, len(fns))
	for _, fn := range fns {
		if fn != nil {
			layers = append(layers, fn)
		}
	}
	if len(layers) == 0 {
		return Layout{}
	}
	return Layout{kind: LayoutChain, fns: layers}
}

// Kind returns the layout variant.
func (l Layout) Kind() LayoutKind {
	return l.kind
}

// Apply wraps child according to the layout.
func (l Layout) Apply(child *vdom.VNode, props page.Props) *vdom.VNode {
	switch l.kind {
	case LayoutSingle:
		return l.fns[0](child, props)
	case LayoutChain:
		out := child
		for i := len(l.fns) - 1; i >= 0; i-- {
			out = l.fns[i](out, props)
		}
		return out
	default:
		return child
	}
}

// Component is a registered page component. Its identity is its pointer.
type Component struct {
	Name   string
	Render RenderFunc
	Layout Layout
}

// ComponentOption configures a Component.
type ComponentOption func(*Component)

// WithLayout sets the component layout.
func WithLayout(l Layout) ComponentOption {
	return func(c *Component) {
		c.Layout = l
	}
}

// New registers a page component.
func New(name string, render RenderFunc, opts ...ComponentOption) *Component {
	c := &Component{Name: name, Render: render}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// instance is a page component bound to its props and scope.
type instance struct {
	component *Component
	scope     *pagectx.Scope
	props     page.Props
}

func (i *instance) Render() *vdom.VNode {
	if i.component.Render == nil {
		return nil
	}
	return i.component.Render(i.scope, i.props)
}
