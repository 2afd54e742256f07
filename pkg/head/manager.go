package head

import (
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/vango-dev/inertia/pkg/render"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// KeyAttribute is the attribute that identifies a replaceable head tag.
const KeyAttribute = "inertia"

// DefaultDebounce is the client-mode commit delay.
const DefaultDebounce = time.Millisecond

// TitleFunc transforms a raw page title before it is emitted.
type TitleFunc func(title string) string

// UpdateFunc receives the collected head tags after a commit.
type UpdateFunc func(elements []string)

// Manager aggregates head declarations for one mounted app.
type Manager struct {
	isServer bool
	title    TitleFunc
	onUpdate UpdateFunc
	debounce time.Duration
	renderer *render.Renderer
	logger   *slog.Logger

	lastID atomic.Int64

	mu       sync.Mutex
	states   map[int64][]*vdom.VNode
	elements []string
	timer    *time.Timer
	pending  bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithDebounce sets the client-mode commit delay. A zero or negative delay
// commits synchronously.
func WithDebounce(d time.Duration) Option {
	return func(m *Manager) {
		m.debounce = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a head manager. A nil title callback leaves titles
// unchanged; a nil update callback discards updates.
func NewManager(isServer bool, title TitleFunc, onUpdate UpdateFunc, opts ...Option) *Manager {
	if title == nil {
		title = func(t string) string { return t }
	}
	if onUpdate == nil {
		onUpdate = func([]string) {}
	}
	m := &Manager{
		isServer: isServer,
		title:    title,
		onUpdate: onUpdate,
		debounce: DefaultDebounce,
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   slog.Default().With("component", "head"),
		states:   make(map[int64][]*vdom.VNode),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsServer reports whether the manager commits synchronously for SSR.
func (m *Manager) IsServer() bool {
	return m.isServer
}

// Provider is one source of head declarations.
type Provider struct {
	m  *Manager
	id int64
}

// CreateProvider connects a new, empty provider.
func (m *Manager) CreateProvider() *Provider {
	id := m.lastID.Inc()
	m.mu.Lock()
	m.states[id] = nil
	m.mu.Unlock()
	return &Provider{m: m, id: id}
}

// Update replaces the provider's declarations and commits.
// Updates after Disconnect are ignored.
func (p *Provider) Update(nodes ...*vdom.VNode) {
	if p == nil {
		return
	}
	p.m.mu.Lock()
	if _, ok := p.m.states[p.id]; !ok {
		p.m.mu.Unlock()
		return
	}
	p.m.states[p.id] = slices.Clone(nodes)
	p.m.mu.Unlock()
	p.m.commit()
}

// Disconnect removes the provider's declarations and commits.
func (p *Provider) Disconnect() {
	if p == nil {
		return
	}
	p.m.mu.Lock()
	if _, ok := p.m.states[p.id]; !ok {
		p.m.mu.Unlock()
		return
	}
	delete(p.m.states, p.id)
	p.m.mu.Unlock()
	p.m.commit()
}

// ForceUpdate re-collects every declaration and delivers the result.
func (m *Manager) ForceUpdate() {
	m.commit()
}

// Elements returns the tags produced by the last completed commit.
func (m *Manager) Elements() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.elements)
}

// Flush runs a pending debounced commit immediately.
func (m *Manager) Flush() {
	m.mu.Lock()
	pending := m.pending
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()
	if pending {
		m.apply()
	}
}

// Close stops any pending debounced commit without delivering it.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.pending = false
}

func (m *Manager) commit() {
	if m.isServer || m.debounce <= 0 {
		m.apply()
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = true
	if m.timer == nil {
		m.timer = time.AfterFunc(m.debounce, m.apply)
		return
	}
	m.timer.Reset(m.debounce)
}

func (m *Manager) apply() {
	m.mu.Lock()
	elements := m.collect()
	m.elements = elements
	m.pending = false
	m.mu.Unlock()

	m.onUpdate(slices.Clone(elements))
}

// collect builds the ordered tag list. Caller must hold m.mu.
func (m *Manager) collect() []string {
	c := collector{index: make(map[string]int)}

	if title := m.title(""); title != "" {
		c.add("title", titleTag(title))
	}

	ids := make([]int64, 0, len(m.states))
	for id := range m.states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		for _, node := range m.states[id] {
			m.collectNode(&c, node)
		}
	}
	return c.out
}

func (m *Manager) collectNode(c *collector, node *vdom.VNode) {
	if node == nil {
		return
	}

	switch node.Kind {
	case vdom.KindFragment:
		for _, child := range node.Children {
			m.collectNode(c, child)
		}
		return
	case vdom.KindComponent:
		if node.Comp != nil {
			m.collectNode(c, node.Comp.Render())
		}
		return
	case vdom.KindElement:
		if node.Tag == "title" {
			c.add("title", titleTag(m.title(node.TextContent())))
			return
		}
	}

	html, err := m.renderer.RenderToString(node)
	if err != nil {
		m.logger.Warn("head tag render failed", "error", err)
		return
	}
	if !strings.Contains(html, "<") {
		return
	}

	key := ""
	if v, ok := node.Attr(KeyAttribute); ok {
		if s, ok := v.(string); ok && s != "" {
			key = KeyAttribute + "=" + s
		}
	}
	c.add(key, html)
}

type collector struct {
	out   []string
	index map[string]int
}

func (c *collector) add(key, html string) {
	if key != "" {
		if i, ok := c.index[key]; ok {
			c.out[i] = html
			return
		}
		c.index[key] = len(c.out)
	}
	c.out = append(c.out, html)
}

func titleTag(title string) string {
	return "<title " + KeyAttribute + ">" + render.EscapeHTML(title) + "</title>"
}
