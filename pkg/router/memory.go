package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/vango-dev/inertia/pkg/mount"
	"github.com/vango-dev/inertia/pkg/page"
)

// ErrNotInitialized is returned by Visit before Init.
var ErrNotInitialized = errors.New("router: not initialized")

// VisitOptions configures a visit.
type VisitOptions struct {
	// PreserveState keeps the remount key of the displayed component.
	PreserveState bool
}

// Memory is an in-process Router. Visits are serialized.
type Memory struct {
	visitMu sync.Mutex

	mu        sync.RWMutex
	opts      InitOptions
	inited    bool
	current   *page.Page
	listeners map[Event]map[int]Listener
	nextID    int
	logger    *slog.Logger
}

// MemoryOption configures a Memory router.
type MemoryOption func(*Memory)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) MemoryOption {
	return func(m *Memory) {
		m.logger = logger
	}
}

// NewMemory creates an uninitialized in-process router.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		listeners: make(map[Event]map[int]Listener),
		logger:    slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init implements Router.
func (m *Memory) Init(opts InitOptions) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opts = opts
	m.inited = true
	m.current = opts.InitialPage
}

// On implements Router.
func (m *Memory) On(event Event, fn Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	if m.listeners[event] == nil {
		m.listeners[event] = make(map[int]Listener)
	}
	m.listeners[event][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners[event], id)
			m.mu.Unlock()
		})
	}
}

// Page returns the current page.
func (m *Memory) Page() *page.Page {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Progress publishes a progress event for the visit in flight.
func (m *Memory) Progress(p *page.Page, pct float64) {
	if pct < 0 {
		pct = 0
	} else if pct > 100 {
		pct = 100
	}
	m.emit(EventProgress, Detail{Page: p, Percentage: pct})
}

// Visit displays p: start, resolve, swap, navigate, finish. A failed visit
// still emits finish with Completed false.
func (m *Memory) Visit(ctx context.Context, p *page.Page, opts VisitOptions) (err error) {
	m.visitMu.Lock()
	defer m.visitMu.Unlock()

	m.mu.RLock()
	cfg, inited := m.opts, m.inited
	m.mu.RUnlock()
	if !inited {
		return ErrNotInitialized
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("router: visit: %w", err)
	}

	m.emit(EventStart, Detail{Page: p})
	defer func() {
		m.emit(EventFinish, Detail{Page: p, Completed: err == nil})
		if err != nil {
			m.logger.Warn("visit failed", "component", p.Component, "url", p.URL, "error", err)
		}
	}()

	component, err := cfg.Resolve(ctx, p.Component)
	if err != nil {
		return fmt.Errorf("router: visit %s: %w", p.URL, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	ev := mount.SwapEvent{Component: component, Page: p, PreserveState: opts.PreserveState}
	if err := cfg.Swap(ctx, ev); err != nil {
		return fmt.Errorf("router: swap %s: %w", p.URL, err)
	}

	m.mu.Lock()
	m.current = p
	m.mu.Unlock()

	m.emit(EventNavigate, Detail{Page: p})
	return nil
}

// emit calls the listeners of event in subscription order.
func (m *Memory) emit(event Event, d Detail) {
	m.mu.RLock()
	subs := m.listeners[event]
	ids := make([]int, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	fns := make([]Listener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, subs[id])
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(d)
	}
}
