package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Attribute creates an arbitrary attribute.
func Attribute(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute (named to avoid conflict with Style element).
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("page", "e30=") → data-page="e30="
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Head and link attributes

func Name(name string) Attr       { return attr("name", name) }
func Content(content string) Attr { return attr("content", content) }
func Property(p string) Attr      { return attr("property", p) }
func Charset(c string) Attr       { return attr("charset", c) }
func Href(href string) Attr       { return attr("href", href) }
func Rel(rel string) Attr         { return attr("rel", rel) }
func Src(src string) Attr         { return attr("src", src) }
func Type(t string) Attr          { return attr("type", t) }
func Lang(lang string) Attr       { return attr("lang", lang) }

// Defer sets the boolean defer attribute.
func Defer() Attr { return attr("defer", true) }
