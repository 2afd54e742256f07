package mount

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/pagectx"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// TemplFunc builds a templ component from page props.
type TemplFunc func(props page.Props) templ.Component

// Templ registers a page component whose body is a templ component.
// The templ component receives the page scope in its context, so it can call
// pagectx.UsePage(ctx).
func Templ(name string, fn TemplFunc, opts ...ComponentOption) *Component {
	return New(name, func(s *pagectx.Scope, props page.Props) *vdom.VNode {
		return vdom.Comp(&templBody{component: fn(props), scope: s}, "")
	}, opts...)
}

type templBody struct {
	component templ.Component
	scope     *pagectx.Scope
}

func (t *templBody) WriteHTML(w io.Writer) error {
	ctx := pagectx.WithScope(context.Background(), t.scope)
	return t.component.Render(ctx, w)
}

// Render buffers the templ output. Renderers use WriteHTML instead, which
// reports errors.
func (t *templBody) Render() *vdom.VNode {
	var buf bytes.Buffer
	if err := t.WriteHTML(&buf); err != nil {
		return nil
	}
	return vdom.Raw(buf.String())
}
