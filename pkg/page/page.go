package page

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
)

var (
	// ErrMalformedPayload is returned when an embedded payload cannot be
	// base64-decoded or JSON-parsed.
	ErrMalformedPayload = errors.New("page: malformed payload")

	// ErrPayloadMissing is returned when a document has no "{id}-data"
	// element, or the element has no data-page attribute.
	ErrPayloadMissing = errors.New("page: embedded payload missing")

	// ErrNoComponent is returned by Validate when the payload names no component.
	ErrNoComponent = errors.New("page: payload has no component")
)

// Props is the property bag handed to the page component.
type Props map[string]any

// Page is the serialized description of the current view.
type Page struct {
	Component string `json:"component"`
	Props     Props  `json:"props"`
	URL       string `json:"url"`
	Version   string `json:"version,omitempty"`
}

// Clone returns a copy with its own top-level props map. Nested values are shared.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	c := *p
	if p.Props != nil {
		c.Props = maps.Clone(p.Props)
	}
	return &c
}

// Validate reports whether the payload can be rendered.
func (p *Page) Validate() error {
	if p == nil || p.Component == "" {
		return ErrNoComponent
	}
	return nil
}

// Only returns a copy whose props are restricted to keys.
// Used for partial reloads.
func (p *Page) Only(keys ...string) *Page {
	c := p.Clone()
	if c == nil {
		return nil
	}
	keep := make(Props, len(keys))
	for _, k := range keys {
		if v, ok := c.Props[k]; ok {
			keep[k] = v
		}
	}
	c.Props = keep
	return c
}

// DecodeError describes which stage of payload decoding failed.
// It matches ErrMalformedPayload with errors.Is.
type DecodeError struct {
	Stage string // "base64" or "json"
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("page: malformed payload (%s): %v", e.Stage, e.Err)
}

// Unwrap exposes both the sentinel and the underlying error.
func (e *DecodeError) Unwrap() []error {
	return []error{ErrMalformedPayload, e.Err}
}

// MarshalJSON always writes props as an object.
func (p Page) MarshalJSON() ([]byte, error) {
	type alias Page
	a := alias(p)
	if a.Props == nil {
		a.Props = Props{}
	}
	return json.Marshal(a)
}

// UnmarshalJSON normalizes a missing or null props field to an empty map.
func (p *Page) UnmarshalJSON(data []byte) error {
	type alias Page
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Props == nil {
		a.Props = Props{}
	}
	*p = Page(a)
	return nil
}

// Encode returns the embedded form of p: its JSON encoding, base64-encoded.
func Encode(p *Page) (string, error) {
	if p == nil {
		return "", ErrNoComponent
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("page: encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Decode parses the embedded form produced by Encode.
func Decode(s string) (*Page, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Stage: "base64", Err: err}
	}
	return ParseJSON(data)
}

// ParseJSON parses a plain JSON payload.
func ParseJSON(data []byte) (*Page, error) {
	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, &DecodeError{Stage: "json", Err: err}
	}
	return &p, nil
}
