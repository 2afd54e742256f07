package vdom

// Document-level elements

func Html(args ...any) *VNode   { return El("html", args...) }
func Head(args ...any) *VNode   { return El("head", args...) }
func Body(args ...any) *VNode   { return El("body", args...) }
func Title(args ...any) *VNode  { return El("title", args...) }
func Meta(args ...any) *VNode   { return El("meta", args...) }
func Link(args ...any) *VNode   { return El("link", args...) }
func Script(args ...any) *VNode { return El("script", args...) }
func Style(args ...any) *VNode  { return El("style", args...) }

// Content elements

func Div(args ...any) *VNode     { return El("div", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func A(args ...any) *VNode       { return El("a", args...) }
func Ul(args ...any) *VNode      { return El("ul", args...) }
func Li(args ...any) *VNode      { return El("li", args...) }
func Pre(args ...any) *VNode     { return El("pre", args...) }
func Code(args ...any) *VNode    { return El("code", args...) }
func Br(args ...any) *VNode      { return El("br", args...) }
