// Package mount decides what the mounted app displays after each navigation.
//
// A Controller holds the displayed state (component, page, remount key) and
// builds the element tree for it. Swap replaces the state wholesale; the key
// is kept for state-preserving navigations and regenerated otherwise.
//
// Render reuses the previously built element while the displayed component
// pointer is unchanged, so prop-only changes do not rebuild the subtree.
// The reused element keeps the props it was built with; page content that
// must follow prop changes across same-component navigations reads the page
// from its scope:
//
//	func(s *pagectx.Scope, props page.Props) *vdom.VNode {
//	    p := pagectx.MustUse(s)
//	    return vdom.Div(vdom.Textf("%v", p.Props["count"]))
//	}
//
// Layouts wrap the page element. A component registered with Single(fn) is
// wrapped once; with Chain(A, B) the result nests as A(B(page)). Every layout
// layer receives the page props.
package mount
