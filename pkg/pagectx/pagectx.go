// Package pagectx gives page content access to the active page payload.
//
// The mounted app owns one Scope and hands it explicitly to every page and
// layout render function. A Scope is the provider: Use returns the payload
// it carries and fails with ErrOutsideProvider for a nil or empty scope.
// Components that only receive a context.Context (templ components) read the
// scope back with FromContext or UsePage.
package pagectx

import (
	"context"
	"errors"
	"sync"

	"github.com/vango-dev/inertia/pkg/head"
	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// ErrOutsideProvider is returned when the page is requested outside an app.
var ErrOutsideProvider = errors.New("pagectx: page must be used within the app component")

// Scope carries the active page and the head provider of the displayed page.
type Scope struct {
	mu   sync.RWMutex
	page *page.Page
	head *head.Provider
}

// NewScope creates a scope providing p.
func NewScope(p *page.Page, provider *head.Provider) *Scope {
	return &Scope{page: p, head: provider}
}

// Use returns the page provided by s.
func Use(s *Scope) (*page.Page, error) {
	if s == nil {
		return nil, ErrOutsideProvider
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.page == nil {
		return nil, ErrOutsideProvider
	}
	return s.page, nil
}

// MustUse is like Use but panics outside a provider.
func MustUse(s *Scope) *page.Page {
	p, err := Use(s)
	if err != nil {
		panic(err)
	}
	return p
}

// SetPage replaces the provided page.
func (s *Scope) SetPage(p *page.Page) {
	s.mu.Lock()
	s.page = p
	s.mu.Unlock()
}

// SetHead replaces the head provider used by Head.
func (s *Scope) SetHead(provider *head.Provider) {
	s.mu.Lock()
	s.head = provider
	s.mu.Unlock()
}

// Head declares the head tags of the current render pass, replacing the
// previous declaration. It is a no-op for scopes without a head provider.
func (s *Scope) Head(nodes ...*vdom.VNode) {
	if s == nil {
		return
	}
	s.mu.RLock()
	provider := s.head
	s.mu.RUnlock()
	provider.Update(nodes...)
}

type scopeKey struct{}

// WithScope returns a context carrying s.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext returns the scope carried by ctx, or nil.
func FromContext(ctx context.Context) *Scope {
	s, _ := ctx.Value(scopeKey{}).(*Scope)
	return s
}

// UsePage returns the page of the scope carried by ctx.
func UsePage(ctx context.Context) (*page.Page, error) {
	return Use(FromContext(ctx))
}
