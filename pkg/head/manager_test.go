package head

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/inertia/pkg/vdom"
)

func TestServerModeReplacesDeclarations(t *testing.T) {
	var captured []string
	m := NewManager(true, nil, func(elements []string) { captured = elements })

	p := m.CreateProvider()
	p.Update(Title("First"), vdom.Meta(vdom.Name("a"), vdom.Content("1")))
	p.Update(Title("Second"))
	m.ForceUpdate()

	want := []string{`<title inertia>Second</title>`}
	if !reflect.DeepEqual(captured, want) {
		t.Errorf("captured = %q, want %q", captured, want)
	}
	if !reflect.DeepEqual(m.Elements(), want) {
		t.Errorf("Elements() = %q, want %q", m.Elements(), want)
	}
}

func TestTitleCallback(t *testing.T) {
	suffix := func(title string) string {
		if title == "" {
			return "Acme"
		}
		return title + " - Acme"
	}

	tests := []struct {
		name  string
		nodes []*vdom.VNode
		want  []string
	}{
		{
			name: "default title",
			want: []string{`<title inertia>Acme</title>`},
		},
		{
			name:  "declared title replaces default",
			nodes: []*vdom.VNode{Title("Users")},
			want:  []string{`<title inertia>Users - Acme</title>`},
		},
		{
			name:  "title text is escaped",
			nodes: []*vdom.VNode{Title("<b>")},
			want:  []string{`<title inertia>&lt;b&gt; - Acme</title>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(true, suffix, nil)
			m.CreateProvider().Update(tt.nodes...)
			m.ForceUpdate()
			if got := m.Elements(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Elements() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyedTagsReplaceInPlace(t *testing.T) {
	m := NewManager(true, nil, nil)

	layout := m.CreateProvider()
	pageP := m.CreateProvider()

	layout.Update(
		Meta("description", "site"),
		vdom.Link(vdom.Rel("icon"), vdom.Href("/favicon.ico")),
	)
	pageP.Update(
		Meta("description", "page"),
		vdom.Meta(vdom.Property("og:type"), vdom.Content("article")),
	)

	want := []string{
		`<meta content="page" inertia="description" name="description">`,
		`<link href="/favicon.ico" rel="icon">`,
		`<meta content="article" property="og:type">`,
	}
	if got := m.Elements(); !reflect.DeepEqual(got, want) {
		t.Errorf("Elements() = %q, want %q", got, want)
	}
}

func TestFragmentsAndTextAreFlattened(t *testing.T) {
	m := NewManager(true, nil, nil)
	m.CreateProvider().Update(
		vdom.Fragment(Title("T"), vdom.Text("ignored")),
		vdom.Comp(vdom.Func(func() *vdom.VNode { return Meta("x", "y") }), ""),
	)

	want := []string{
		`<title inertia>T</title>`,
		`<meta content="y" inertia="x" name="x">`,
	}
	if got := m.Elements(); !reflect.DeepEqual(got, want) {
		t.Errorf("Elements() = %q, want %q", got, want)
	}
}

func TestDisconnectRemovesDeclarations(t *testing.T) {
	m := NewManager(true, nil, nil)
	p := m.CreateProvider()
	p.Update(Title("Gone"))
	p.Disconnect()

	if got := m.Elements(); len(got) != 0 {
		t.Errorf("Elements() = %q, want empty", got)
	}

	// Updates after disconnect are ignored.
	p.Update(Title("Ghost"))
	if got := m.Elements(); len(got) != 0 {
		t.Errorf("Elements() after stale update = %q, want empty", got)
	}
}

func TestClientModeDebounces(t *testing.T) {
	var (
		mu    sync.Mutex
		calls [][]string
	)
	m := NewManager(false, nil, func(elements []string) {
		mu.Lock()
		calls = append(calls, elements)
		mu.Unlock()
	}, WithDebounce(time.Hour))
	defer m.Close()

	p := m.CreateProvider()
	p.Update(Title("One"))
	p.Update(Title("Two"))
	m.ForceUpdate()

	mu.Lock()
	if len(calls) != 0 {
		t.Fatalf("update delivered before flush: %q", calls)
	}
	mu.Unlock()

	m.Flush()

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(calls))
	}
	if want := []string{`<title inertia>Two</title>`}; !reflect.DeepEqual(calls[0], want) {
		t.Errorf("delivered %q, want %q", calls[0], want)
	}
}

func TestClientModeTimerDelivers(t *testing.T) {
	done := make(chan []string, 1)
	m := NewManager(false, nil, func(elements []string) { done <- elements })
	defer m.Close()

	m.CreateProvider().Update(Title("Later"))

	select {
	case got := <-done:
		if want := []string{`<title inertia>Later</title>`}; !reflect.DeepEqual(got, want) {
			t.Errorf("delivered %q, want %q", got, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounced update never delivered")
	}
}

func TestFlushWithoutPendingIsNoop(t *testing.T) {
	calls := 0
	m := NewManager(false, nil, func([]string) { calls++ }, WithDebounce(0))
	m.Flush()
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
	m.ForceUpdate()
	if calls != 1 {
		t.Errorf("zero debounce should commit synchronously, calls = %d", calls)
	}
}
