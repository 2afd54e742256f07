package router

import (
	"context"

	"github.com/vango-dev/inertia/pkg/mount"
	"github.com/vango-dev/inertia/pkg/page"
)

// Event names a visit lifecycle event.
type Event string

const (
	EventStart    Event = "start"
	EventProgress Event = "progress"
	EventNavigate Event = "navigate"
	EventFinish   Event = "finish"
)

// Detail is the payload of an event.
type Detail struct {
	// Page is the visited page.
	Page *page.Page

	// Percentage is set on progress events, in [0, 100].
	Percentage float64

	// Completed is set on finish events.
	Completed bool
}

// Listener receives events.
type Listener func(Detail)

// ResolveFunc resolves a component name.
type ResolveFunc func(ctx context.Context, name string) (*mount.Component, error)

// SwapFunc displays a new component and page.
type SwapFunc func(ctx context.Context, ev mount.SwapEvent) error

// InitOptions is passed to Router.Init by the app.
type InitOptions struct {
	InitialPage *page.Page
	Resolve     ResolveFunc
	Swap        SwapFunc
}

// Router is the contract the app depends on.
type Router interface {
	// Init registers the app. Later calls replace earlier ones.
	Init(opts InitOptions)

	// On subscribes to an event and returns the unsubscribe function.
	On(event Event, fn Listener) func()
}
