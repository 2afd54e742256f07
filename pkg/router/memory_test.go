package router

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vango-dev/inertia/pkg/mount"
	"github.com/vango-dev/inertia/pkg/page"
)

func recordEvents(m *Memory) *[]string {
	var got []string
	for _, ev := range []Event{EventStart, EventProgress, EventNavigate, EventFinish} {
		ev := ev
		m.On(ev, func(d Detail) {
			s := string(ev)
			if ev == EventFinish && !d.Completed {
				s += "(failed)"
			}
			got = append(got, s)
		})
	}
	return &got
}

func TestVisitLifecycle(t *testing.T) {
	home := mount.New("Home", nil)
	initial := &page.Page{Component: "Home", URL: "/"}
	next := &page.Page{Component: "Home", URL: "/?page=2"}

	var swaps []mount.SwapEvent
	m := NewMemory()
	m.Init(InitOptions{
		InitialPage: initial,
		Resolve: func(ctx context.Context, name string) (*mount.Component, error) {
			return home, nil
		},
		Swap: func(ctx context.Context, ev mount.SwapEvent) error {
			swaps = append(swaps, ev)
			return nil
		},
	})
	got := recordEvents(m)

	if m.Page() != initial {
		t.Fatal("Page() should be the initial page after Init")
	}
	if err := m.Visit(context.Background(), next, VisitOptions{PreserveState: true}); err != nil {
		t.Fatalf("Visit() error = %v", err)
	}

	want := []string{"start", "navigate", "finish"}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("events = %v, want %v", *got, want)
	}
	if len(swaps) != 1 || swaps[0].Component != home || swaps[0].Page != next || !swaps[0].PreserveState {
		t.Errorf("swaps = %+v", swaps)
	}
	if m.Page() != next {
		t.Error("Page() should be the visited page")
	}
}

func TestVisitResolveFailure(t *testing.T) {
	boom := errors.New("boom")
	m := NewMemory()
	m.Init(InitOptions{
		Resolve: func(ctx context.Context, name string) (*mount.Component, error) {
			return nil, boom
		},
		Swap: func(ctx context.Context, ev mount.SwapEvent) error {
			t.Error("swap must not run after a failed resolve")
			return nil
		},
	})
	got := recordEvents(m)

	err := m.Visit(context.Background(), &page.Page{Component: "Missing", URL: "/x"}, VisitOptions{})
	if !errors.Is(err, boom) {
		t.Fatalf("Visit() error = %v, want boom", err)
	}
	want := []string{"start", "finish(failed)"}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("events = %v, want %v", *got, want)
	}
	if m.Page() != nil {
		t.Error("Page() should be unchanged after a failed visit")
	}
}

func TestVisitErrors(t *testing.T) {
	m := NewMemory()
	if err := m.Visit(context.Background(), &page.Page{Component: "A"}, VisitOptions{}); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Visit() before Init = %v", err)
	}

	m.Init(InitOptions{})
	if err := m.Visit(context.Background(), &page.Page{}, VisitOptions{}); !errors.Is(err, page.ErrNoComponent) {
		t.Errorf("Visit() with empty page = %v", err)
	}
}

func TestOnUnsubscribe(t *testing.T) {
	m := NewMemory()
	calls := 0
	off := m.On(EventProgress, func(d Detail) { calls++ })

	m.Progress(nil, 40)
	off()
	off()
	m.Progress(nil, 60)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestProgressClamps(t *testing.T) {
	m := NewMemory()
	var got []float64
	m.On(EventProgress, func(d Detail) { got = append(got, d.Percentage) })

	m.Progress(nil, -5)
	m.Progress(nil, 50)
	m.Progress(nil, 150)

	if want := []float64{0, 50, 100}; !reflect.DeepEqual(got, want) {
		t.Errorf("percentages = %v, want %v", got, want)
	}
}
