package page

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// DataAttribute is the attribute holding the embedded payload.
const DataAttribute = "data-page"

// DataElementID returns the id of the element carrying the payload for the
// app mounted at id.
func DataElementID(id string) string {
	return id + "-data"
}

// ReadEmbedded parses an HTML document and decodes the payload embedded for
// the app mounted at id.
func ReadEmbedded(r io.Reader, id string) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse document: %w", err)
	}
	return FromDocument(doc, id)
}

// FromDocument decodes the payload embedded in an already parsed document.
func FromDocument(doc *html.Node, id string) (*Page, error) {
	dataID := DataElementID(id)
	el := FindElement(doc, dataID)
	if el == nil {
		return nil, fmt.Errorf("%w: no element #%s", ErrPayloadMissing, dataID)
	}
	raw, ok := Attr(el, DataAttribute)
	if !ok {
		return nil, fmt.Errorf("%w: #%s has no %s attribute", ErrPayloadMissing, dataID, DataAttribute)
	}
	return Decode(raw)
}

// FindElement returns the first element under n whose id attribute equals id.
func FindElement(n *html.Node, id string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode {
		if v, ok := Attr(n, "id"); ok && v == id {
			return n
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindElement(c, id); found != nil {
			return found
		}
	}
	return nil
}

// Attr returns the value of the named attribute of n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
