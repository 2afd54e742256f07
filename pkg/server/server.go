package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	inertia "github.com/vango-dev/inertia"
	"github.com/vango-dev/inertia/pkg/assets"
	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/progress"
	"github.com/vango-dev/inertia/pkg/render"
	"github.com/vango-dev/inertia/pkg/vdom"
)

// Protocol headers.
const (
	HeaderInertia          = "X-Inertia"
	HeaderVersion          = "X-Inertia-Version"
	HeaderLocation         = "X-Inertia-Location"
	HeaderPartialComponent = "X-Inertia-Partial-Component"
	HeaderPartialData      = "X-Inertia-Partial-Data"
)

const tracerName = "github.com/vango-dev/inertia/pkg/server"

// Option configures a Server.
type Option func(*Server)

// WithMetrics records Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTracer sets the tracer. Default: otel.Tracer for this package.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = t
	}
}

// Server hosts pages and live sessions.
type Server struct {
	config   Config
	mux      chi.Router
	upgrader websocket.Upgrader
	metrics  *Metrics
	tracer   trace.Tracer
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// New creates a server. config.Resolve is required.
func New(config Config, opts ...Option) *Server {
	config = config.withDefaults()
	s := &Server{
		config: config,
		mux:    chi.NewRouter(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		tracer:   otel.Tracer(tracerName),
		logger:   config.Logger,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mux.Use(middleware.Recoverer)
	s.mux.Use(s.traceRequests)
	s.mux.Use(s.versionCheck)
	if config.LivePath != "" {
		s.mux.Get(config.LivePath, s.HandleLive)
	}
	return s
}

// Router returns the chi router page handlers are registered on.
func (s *Server) Router() chi.Router {
	return s.mux
}

// PropsFunc computes the props of a page for a request.
type PropsFunc func(r *http.Request) (page.Props, error)

// Page registers a GET route rendering component with props.
func (s *Server) Page(pattern, component string, props PropsFunc) {
	s.mux.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		var p page.Props
		if props != nil {
			var err error
			if p, err = props(r); err != nil {
				s.logger.Error("props failed", "component", component, "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}
		s.Render(w, r, component, p)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Version returns the current asset version.
func (s *Server) Version() string {
	if s.config.Version == nil {
		return ""
	}
	return s.config.Version()
}

// IsInertia reports whether r asks for a JSON page payload.
func IsInertia(r *http.Request) bool {
	return r.Header.Get(HeaderInertia) == "true"
}

// Render answers r with component and props: a JSON payload for page
// requests, a full document otherwise.
func (s *Server) Render(w http.ResponseWriter, r *http.Request, component string, props page.Props) {
	p := &page.Page{
		Component: component,
		Props:     props,
		URL:       r.URL.RequestURI(),
		Version:   s.Version(),
	}

	if IsInertia(r) {
		partial := false
		if r.Header.Get(HeaderPartialComponent) == component {
			if keys := splitList(r.Header.Get(HeaderPartialData)); len(keys) > 0 {
				p = p.Only(keys...)
				partial = true
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Vary", HeaderInertia)
		w.Header().Set(HeaderInertia, "true")
		if err := json.NewEncoder(w).Encode(p); err != nil {
			s.logger.Error("encode page failed", "component", component, "error", err)
			return
		}
		s.metrics.recordJSON(component, partial)
		return
	}

	var buf bytes.Buffer
	if err := s.renderDocument(r.Context(), &buf, p); err != nil {
		s.logger.Error("render failed", "component", component, "url", p.URL, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", HeaderInertia)
	w.Write(buf.Bytes())
}

// renderDocument server-renders p into a complete HTML document.
func (s *Server) renderDocument(ctx context.Context, buf *bytes.Buffer, p *page.Page) (err error) {
	ctx, span := s.tracer.Start(ctx, "inertia.render",
		trace.WithAttributes(
			attribute.String("inertia.component", p.Component),
			attribute.String("inertia.url", p.URL),
		))
	start := time.Now()
	defer func() {
		s.metrics.recordSSR(p.Component, time.Since(start).Seconds(), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	res, err := inertia.CreateApp(ctx, inertia.Options{
		ID:      s.config.ID,
		Resolve: s.config.Resolve,
		Setup:   mountApp,
		Title:   s.config.Title,
		Page:    p,
		Render:  inertia.RenderHTML,
		Logger:  s.logger,
	})
	if err != nil {
		return err
	}

	styleSheets, scripts := assets.Entrypoints(s.config.Assets, s.config.Entrypoints...)
	doc := render.Document{
		Head:        res.Head,
		Body:        res.Body,
		StyleSheets: styleSheets,
		Scripts:     scripts,
		Lang:        s.config.Lang,
	}
	if s.config.LivePath != "" && !s.config.Progress.Disabled && s.config.Progress.IncludeCSS {
		doc.Styles = append(doc.Styles, progress.CSS(s.config.Progress))
	}
	return render.NewRenderer(render.RendererConfig{}).RenderDocument(buf, doc)
}

func mountApp(_ context.Context, o inertia.SetupOptions) (*vdom.VNode, error) {
	return o.App(o.Props).Node(), nil
}

// versionCheck answers stale GET page requests with 409 Conflict.
func (s *Server) versionCheck(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && IsInertia(r) {
			if current := s.Version(); r.Header.Get(HeaderVersion) != current {
				s.metrics.recordVersionConflict()
				s.logger.Debug("asset version conflict",
					"client", r.Header.Get(HeaderVersion), "current", current, "url", r.URL.RequestURI())
				w.Header().Set(HeaderLocation, requestURL(r))
				w.WriteHeader(http.StatusConflict)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Location sends the client to url with a full page load.
func Location(w http.ResponseWriter, r *http.Request, url string) {
	if IsInertia(r) {
		w.Header().Set(HeaderLocation, url)
		w.WriteHeader(http.StatusConflict)
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// Redirect redirects r to url, with 303 after PUT, PATCH and DELETE.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	code := http.StatusFound
	switch r.Method {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		code = http.StatusSeeOther
	}
	http.Redirect(w, r, url, code)
}

// Close disconnects every live session.
func (s *Server) Close() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()
	for _, sess := range sessions {
		sess.Close()
	}
}

// SessionCount returns the number of connected live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
