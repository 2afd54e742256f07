package head

import "github.com/vango-dev/inertia/pkg/vdom"

// Key marks a head tag as replaceable: a later declaration with the same key
// takes its place.
func Key(key string) vdom.Attr {
	return vdom.Attribute(KeyAttribute, key)
}

// Title declares the page title.
func Title(text string) *vdom.VNode {
	return vdom.Title(vdom.Text(text))
}

// Meta declares a named meta tag, keyed by its name.
func Meta(name, content string) *vdom.VNode {
	return vdom.Meta(vdom.Name(name), vdom.Content(content), Key(name))
}
