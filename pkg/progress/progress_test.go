package progress

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/inertia/pkg/render"
	"github.com/vango-dev/inertia/pkg/router"
)

// fakeRouter publishes events on demand.
type fakeRouter struct {
	mu        sync.Mutex
	listeners map[router.Event][]router.Listener
}

func newFakeRouter() *fakeRouter {
	return &fakeRouter{listeners: make(map[router.Event][]router.Listener)}
}

func (f *fakeRouter) Init(router.InitOptions) {}

func (f *fakeRouter) On(ev router.Event, fn router.Listener) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners[ev] = append(f.listeners[ev], fn)
	idx := len(f.listeners[ev]) - 1
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.listeners[ev][idx] = nil
	}
}

func (f *fakeRouter) emit(ev router.Event, d router.Detail) {
	f.mu.Lock()
	fns := append([]router.Listener(nil), f.listeners[ev]...)
	f.mu.Unlock()
	for _, fn := range fns {
		if fn != nil {
			fn(d)
		}
	}
}

func TestDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = true
	if ind := Setup(newFakeRouter(), cfg, nil); ind != nil {
		t.Error("Setup() should return nil when disabled")
	}
}

func TestFastVisitShowsNothing(t *testing.T) {
	r := newFakeRouter()
	cfg := DefaultConfig()
	cfg.Delay = time.Hour
	changes := 0
	ind := Setup(r, cfg, func(State) { changes++ })
	defer ind.Stop()

	r.emit(router.EventStart, router.Detail{})
	r.emit(router.EventProgress, router.Detail{Percentage: 50})
	r.emit(router.EventFinish, router.Detail{Completed: true})

	if changes != 0 {
		t.Errorf("changes = %d, want 0", changes)
	}
	if ind.State().Visible {
		t.Error("bar should stay hidden")
	}
}

func TestSlowVisit(t *testing.T) {
	r := newFakeRouter()
	cfg := DefaultConfig()
	cfg.Delay = -1

	shown := make(chan struct{}, 1)
	var mu sync.Mutex
	var states []State
	ind := Setup(r, cfg, func(s State) {
		mu.Lock()
		states = append(states, s)
		mu.Unlock()
		if s.Visible && s.Value == startValue {
			shown <- struct{}{}
		}
	})
	defer ind.Stop()

	r.emit(router.EventStart, router.Detail{})
	select {
	case <-shown:
	case <-time.After(2 * time.Second):
		t.Fatal("bar never shown")
	}

	r.emit(router.EventProgress, router.Detail{Percentage: 50})
	if got := ind.State().Value; got != 0.45 {
		t.Errorf("Value after 50%% = %v, want 0.45", got)
	}
	r.emit(router.EventProgress, router.Detail{Percentage: 10})
	if got := ind.State().Value; got != 0.45 {
		t.Errorf("Value must not move back, got %v", got)
	}

	r.emit(router.EventFinish, router.Detail{Completed: true})
	if ind.State().Visible {
		t.Error("bar should hide after finish")
	}

	mu.Lock()
	defer mu.Unlock()
	last := states[len(states)-2]
	if !last.Visible || last.Value != 1 {
		t.Errorf("bar should complete before hiding, got %+v", last)
	}
}

func TestSetupDefaults(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantDelay time.Duration
		wantColor string
	}{
		{"partial", Config{Color: "red"}, 250 * time.Millisecond, "red"},
		{"zero", Config{}, 250 * time.Millisecond, "#29d"},
		{"explicit delay", Config{Delay: time.Second}, time.Second, "#29d"},
		{"immediate", Config{Delay: -1}, 0, "#29d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ind := Setup(newFakeRouter(), tt.cfg, nil)
			defer ind.Stop()
			got := ind.Config()
			if got.Delay != tt.wantDelay || got.Color != tt.wantColor {
				t.Errorf("Config() = %+v, want delay %v color %q", got, tt.wantDelay, tt.wantColor)
			}
		})
	}
}

func TestNode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShowSpinner = true
	ind := Setup(newFakeRouter(), cfg, nil)
	defer ind.Stop()

	if ind.Node() != nil {
		t.Fatal("hidden bar should render nothing")
	}
	ind.show()

	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(ind.Node())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`id="nprogress"`, `class="bar"`, `class="spinner"`, "<style>", "#29d"} {
		if !strings.Contains(html, want) {
			t.Errorf("Node() missing %q in %s", want, html)
		}
	}
}

func TestCSS(t *testing.T) {
	css := CSS(Config{Color: "red"})
	if !strings.Contains(css, "background: red;") {
		t.Error("CSS() should apply the color")
	}
	if strings.Contains(css, "spinner") {
		t.Error("CSS() should omit spinner rules")
	}
	if !strings.Contains(CSS(Config{ShowSpinner: true}), "border-top-color: #29d;") {
		t.Error("CSS() should include spinner rules with the default color")
	}
}
