package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/inertia/pkg/assets"
	"github.com/vango-dev/inertia/pkg/head"
	"github.com/vango-dev/inertia/pkg/progress"
	"github.com/vango-dev/inertia/pkg/resolve"
)

// Config configures a Server.
type Config struct {
	// ID is the mount element id. Default: "app".
	ID string

	// Resolve maps component names to components. Required.
	Resolve resolve.Func

	// Title transforms page titles.
	Title head.TitleFunc

	// Version returns the current asset version. Nil means unversioned.
	Version func() string

	// Assets resolves Entrypoints. Default: passthrough with no prefix.
	Assets assets.Resolver

	// Entrypoints are linked from every document: .css files as
	// stylesheets, everything else as module scripts.
	Entrypoints []string

	// Lang is the document language. Default: "en".
	Lang string

	// Progress configures the progress bar of live sessions.
	Progress progress.Config

	// LivePath is where live sessions connect. Empty disables them.
	LivePath string

	// ReadLimit is the maximum size of a live frame. Default: 64KB.
	ReadLimit int64

	// HandshakeTimeout bounds the wait for the hello frame. Default: 10s.
	HandshakeTimeout time.Duration

	// PingInterval is the time between pings. Default: 30s.
	PingInterval time.Duration

	// WriteTimeout bounds a single frame write. Default: 10s.
	WriteTimeout time.Duration

	// CheckOrigin validates the Origin of live upgrades. Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	Logger *slog.Logger
}

// DefaultConfig returns a Config with defaults and the given resolver.
func DefaultConfig(resolveFn resolve.Func) Config {
	return Config{
		ID:               "app",
		Resolve:          resolveFn,
		Lang:             "en",
		Progress:         progress.DefaultConfig(),
		LivePath:         "/_inertia/live",
		ReadLimit:        64 * 1024,
		HandshakeTimeout: 10 * time.Second,
		PingInterval:     30 * time.Second,
		WriteTimeout:     10 * time.Second,
		CheckOrigin:      SameOriginCheck,
	}
}

// withDefaults fills zero fields.
func (c Config) withDefaults() Config {
	d := DefaultConfig(c.Resolve)
	if c.ID == "" {
		c.ID = d.ID
	}
	if c.Lang == "" {
		c.Lang = d.Lang
	}
	if c.ReadLimit <= 0 {
		c.ReadLimit = d.ReadLimit
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = d.HandshakeTimeout
	}
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.Assets == nil {
		c.Assets = assets.NewPassthroughResolver("")
	}
	if c.Logger == nil {
		c.Logger = slog.Default().With("component", "server")
	}
	return c
}

// SameOriginCheck accepts upgrades without an Origin header or whose Origin
// host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}
