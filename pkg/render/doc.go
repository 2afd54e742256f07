// Package render provides server-side rendering of VNode trees to HTML.
//
// The renderer writes elements, escaped text, fragments, component output and
// raw HTML. Attributes are written in sorted order so output is stable, which
// keeps head tags comparable across render passes.
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Documents
//
// RenderDocument wraps pre-rendered head tags and body markup (the output of
// an SSR pass) in a complete HTML document:
//
//	err := renderer.RenderDocument(w, render.Document{
//	    Head: result.Head,
//	    Body: result.Body,
//	    Scripts: []render.ScriptTag{{Src: "/build/app.js", Module: true}},
//	})
//
// # Security
//
// All text content and attribute values are escaped. KindRaw nodes are
// written verbatim and must only carry trusted content.
package render
