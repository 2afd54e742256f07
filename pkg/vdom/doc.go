// Package vdom provides the node model page components render to.
//
// A VNode is an element, text, fragment, lazily rendered component, or raw
// HTML. Page components and layouts return VNodes; the render package turns
// them into HTML. Component nodes are rendered each time the tree is written,
// so a retained component node always reads its state at write time.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	)
//
// Arguments may be attributes, child nodes, strings (text children),
// components, or nil (skipped), which keeps conditional markup inline.
package vdom
