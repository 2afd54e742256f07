// Package progress drives a page-visit progress bar from router events.
//
// The bar appears only for visits slower than Config.Delay. Progress events
// advance it to 90% of the reported percentage at most, and finishing a visit
// completes and hides it. Hosts observe the bar through the onChange callback
// or render it with Indicator.Node.
package progress

import (
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/vango-dev/inertia/pkg/router"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// Config configures the indicator.
type Config struct {
	// Delay before the bar shows. Visits finishing sooner show nothing.
	// Zero means the default; a negative delay shows the bar at once.
	Delay time.Duration

	// Color of the bar and spinner.
	Color string

	// IncludeCSS adds the stylesheet to Node output. It is off in a zero
	// Config; start from DefaultConfig to keep it on.
	IncludeCSS bool

	// ShowSpinner adds the spinner.
	ShowSpinner bool

	// Disabled turns the indicator off.
	Disabled bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Delay:      250 * time.Millisecond,
		Color:      "#29d",
		IncludeCSS: true,
	}
}

// startValue is where a freshly shown bar begins.
const startValue = 0.08

// State is the visible state of the bar.
type State struct {
	Visible bool

	// Value is the bar fill in [0, 1].
	Value float64
}

// Indicator is a progress bar bound to a router.
type Indicator struct {
	cfg      Config
	onChange func(State)

	visible *atomic.Bool
	value   *atomic.Float64

	mu    sync.Mutex
	timer *time.Timer
	offs  []func()
}

// Setup subscribes an indicator to r. It returns nil when cfg.Disabled.
// A zero Delay or Color takes the default. onChange may be nil.
func Setup(r router.Router, cfg Config, onChange func(State)) *Indicator {
	if cfg.Disabled {
		return nil
	}
	d := DefaultConfig()
	if cfg.Color == "" {
		cfg.Color = d.Color
	}
	switch {
	case cfg.Delay == 0:
		cfg.Delay = d.Delay
	case cfg.Delay < 0:
		cfg.Delay = 0
	}
	ind := &Indicator{
		cfg:      cfg,
		onChange: onChange,
		visible:  atomic.NewBool(false),
		value:    atomic.NewFloat64(0),
	}
	ind.offs = []func(){
		r.On(router.EventStart, ind.onStart),
		r.On(router.EventProgress, ind.onProgress),
		r.On(router.EventFinish, ind.onFinish),
	}
	return ind
}

// Config returns the effective configuration.
func (i *Indicator) Config() Config {
	return i.cfg
}

// State returns the current bar state.
func (i *Indicator) State() State {
	return State{Visible: i.visible.Load(), Value: i.value.Load()}
}

// Stop unsubscribes from the router and cancels a pending show.
func (i *Indicator) Stop() {
	i.mu.Lock()
	offs := i.offs
	i.offs = nil
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
	i.mu.Unlock()
	for _, off := range offs {
		off()
	}
}

func (i *Indicator) onStart(router.Detail) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.timer != nil {
		i.timer.Stop()
	}
	i.timer = time.AfterFunc(i.cfg.Delay, i.show)
}

func (i *Indicator) show() {
	if i.visible.CompareAndSwap(false, true) {
		i.value.Store(startValue)
		i.notify()
	}
}

func (i *Indicator) onProgress(d router.Detail) {
	if !i.visible.Load() {
		return
	}
	target := d.Percentage / 100 * 0.9
	for {
		cur := i.value.Load()
		next := math.Max(cur, target)
		if next == cur {
			return
		}
		if i.value.CompareAndSwap(cur, next) {
			break
		}
	}
	i.notify()
}

func (i *Indicator) onFinish(router.Detail) {
	i.mu.Lock()
	if i.timer != nil {
		i.timer.Stop()
		i.timer = nil
	}
	i.mu.Unlock()

	if !i.visible.Load() {
		return
	}
	i.value.Store(1)
	i.notify()
	i.visible.Store(false)
	i.value.Store(0)
	i.notify()
}

func (i *Indicator) notify() {
	if i.onChange != nil {
		i.onChange(i.State())
	}
}

// Node renders the bar, or nil when hidden.
func (i *Indicator) Node() *vdom.VNode {
	st := i.State()
	if !st.Visible {
		return nil
	}
	pct := st.Value * 100
	return vdom.Div(
		vdom.ID("nprogress"),
		vdom.If(i.cfg.IncludeCSS, vdom.Style(vdom.Raw(CSS(i.cfg)))),
		vdom.Div(
			vdom.Class("bar"),
			vdom.Attribute("role", "bar"),
			vdom.StyleAttr(fmt.Sprintf("transform: translate3d(%.2f%%,0,0)", pct-100)),
			vdom.Div(vdom.Class("peg")),
		),
		vdom.If(i.cfg.ShowSpinner, vdom.Div(
			vdom.Class("spinner"),
			vdom.Attribute("role", "spinner"),
			vdom.Div(vdom.Class("spinner-icon")),
		)),
	)
}
