package server

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	inertia "github.com/vango-dev/inertia"
	"github.com/vango-dev/inertia/pkg/page"
	"github.com/vango-dev/inertia/pkg/progress"
	"github.com/vango-dev/inertia/pkg/routepath"
	"github.com/vango-dev/inertia/pkg/router"
)

// Frame types.
const (
	FrameHello    = "hello"
	FrameVisit    = "visit"
	FrameSwap     = "swap"
	FrameHead     = "head"
	FrameProgress = "progress"
	FrameLocation = "location"
	FrameError    = "error"
)

// Frame is a live session message.
type Frame struct {
	Type string `json:"type"`

	// hello: the base64 page payload embedded in the document
	Data string `json:"data,omitempty"`

	// visit
	URL           string `json:"url,omitempty"`
	PreserveState bool   `json:"preserveState,omitempty"`

	// swap
	HTML string     `json:"html,omitempty"`
	Page *page.Page `json:"page,omitempty"`

	// head
	Tags []string `json:"tags,omitempty"`

	// progress
	Visible bool    `json:"visible,omitempty"`
	Value   float64 `json:"value,omitempty"`

	// error
	Message string `json:"message,omitempty"`
}

// Session is a page mounted on the server for one live client.
type Session struct {
	id     string
	srv    *Server
	conn   *websocket.Conn
	router *router.Memory
	app    *inertia.App
	bar    *progress.Indicator
	header http.Header
	host   string
	tls    *tls.ConnectionState
	logger *slog.Logger

	writeMu   sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

// ID returns the session id.
func (sess *Session) ID() string {
	return sess.id
}

// HandleLive upgrades r to a live session.
func (s *Server) HandleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.config.ReadLimit)

	sess := &Session{
		id:     uuid.NewString(),
		srv:    s,
		conn:   conn,
		router: router.NewMemory(router.WithLogger(s.logger)),
		header: forwardHeaders(r.Header),
		host:   r.Host,
		tls:    r.TLS,
		done:   make(chan struct{}),
	}
	sess.logger = s.logger.With("session", sess.id)

	if err := sess.handshake(); err != nil {
		s.metrics.recordHandshakeFailure()
		sess.logger.Warn("handshake failed", "error", err)
		sess.send(Frame{Type: FrameError, Message: err.Error()})
		sess.Close()
		return
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	s.metrics.sessionOpened()
	sess.logger.Info("session started")

	go sess.pingLoop()
	sess.readLoop()
}

// handshake reads the hello frame and mounts its page.
func (sess *Session) handshake() error {
	cfg := sess.srv.config
	sess.conn.SetReadDeadline(time.Now().Add(cfg.HandshakeTimeout))
	var hello Frame
	if err := sess.conn.ReadJSON(&hello); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHandshake, err)
	}
	if hello.Type != FrameHello {
		return fmt.Errorf("%w: expected %s frame, got %q", ErrInvalidHandshake, FrameHello, hello.Type)
	}
	p, err := page.Decode(hello.Data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHandshake, err)
	}

	progressCfg := cfg.Progress
	res, err := inertia.CreateApp(context.Background(), inertia.Options{
		ID:           cfg.ID,
		Resolve:      cfg.Resolve,
		Setup:        mountApp,
		Title:        cfg.Title,
		Page:         p,
		Router:       sess.router,
		Progress:     &progressCfg,
		OnProgress:   sess.sendProgress,
		OnHeadUpdate: sess.sendHead,
		Logger:       sess.logger,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHandshake, err)
	}
	sess.app = res.App
	sess.bar = res.Progress
	sess.conn.SetReadDeadline(time.Time{})

	return sess.sendSwap(p)
}

// readLoop handles visit frames until the connection closes.
func (sess *Session) readLoop() {
	defer sess.Close()

	cfg := sess.srv.config
	sess.conn.SetReadDeadline(time.Now().Add(2 * cfg.PingInterval))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(2 * cfg.PingInterval))
	})

	for {
		var f Frame
		if err := sess.conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.logger.Error("read error", "error", err)
			}
			return
		}

		switch f.Type {
		case FrameVisit:
			if err := sess.visit(context.Background(), f.URL, f.PreserveState); err != nil {
				sess.logger.Warn("visit failed", "url", f.URL, "error", err)
				sess.send(Frame{Type: FrameError, Message: err.Error()})
			}
		default:
			sess.logger.Warn("unknown frame type", "type", f.Type)
		}
	}
}

// visit fetches url in JSON mode and swaps the mounted page.
func (sess *Session) visit(ctx context.Context, url string, preserveState bool) (err error) {
	srv := sess.srv
	ctx, span := srv.tracer.Start(ctx, "inertia.live.visit",
		trace.WithAttributes(
			attribute.String("inertia.url", url),
			attribute.Bool("inertia.preserve_state", preserveState),
		))
	defer func() {
		srv.metrics.recordVisit(err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	target, err := routepath.Clean(url)
	if err != nil {
		return &SessionError{SessionID: sess.id, Op: "visit", Err: err}
	}
	p, location, err := sess.fetch(ctx, target)
	if err != nil {
		return &SessionError{SessionID: sess.id, Op: "visit", Err: err}
	}
	if location != "" {
		return sess.send(Frame{Type: FrameLocation, URL: location})
	}
	span.SetAttributes(attribute.String("inertia.component", p.Component))

	if err := sess.router.Visit(ctx, p, router.VisitOptions{PreserveState: preserveState}); err != nil {
		return &SessionError{SessionID: sess.id, Op: "visit", Err: err}
	}
	return sess.sendSwap(p)
}

// fetch routes url through the server in JSON mode. A non-empty location
// means the client must reload.
func (sess *Session) fetch(ctx context.Context, url string) (*page.Page, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Host = sess.host
	req.TLS = sess.tls
	req.Header = sess.header.Clone()
	req.Header.Set(HeaderInertia, "true")
	req.Header.Set(HeaderVersion, sess.version())

	rec := newBufferedResponse()
	sess.srv.mux.ServeHTTP(rec, req)

	switch {
	case rec.status == http.StatusConflict:
		return nil, rec.header.Get(HeaderLocation), nil
	case rec.status != http.StatusOK || rec.header.Get(HeaderInertia) != "true":
		return nil, "", fmt.Errorf("%w: %s answered %d", ErrUnexpectedResponse, url, rec.status)
	}
	p, err := page.ParseJSON(rec.body.Bytes())
	if err != nil {
		return nil, "", err
	}
	return p, "", nil
}

// version is the asset version of the mounted page.
func (sess *Session) version() string {
	if p := sess.router.Page(); p != nil {
		return p.Version
	}
	return ""
}

func (sess *Session) sendSwap(p *page.Page) error {
	html, err := inertia.RenderHTML(context.Background(), sess.app.Node())
	if err != nil {
		return err
	}
	if err := sess.send(Frame{Type: FrameSwap, HTML: html, Page: p}); err != nil {
		return err
	}
	sess.srv.metrics.recordSwap()
	return nil
}

func (sess *Session) sendHead(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	sess.send(Frame{Type: FrameHead, Tags: tags})
}

func (sess *Session) sendProgress(st progress.State) {
	sess.send(Frame{Type: FrameProgress, Visible: st.Visible, Value: st.Value})
}

// send writes one frame. It is safe for concurrent use.
func (sess *Session) send(f Frame) error {
	select {
	case <-sess.done:
		return ErrSessionClosed
	default:
	}
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	sess.conn.SetWriteDeadline(time.Now().Add(sess.srv.config.WriteTimeout))
	if err := sess.conn.WriteJSON(f); err != nil {
		return &SessionError{SessionID: sess.id, Op: "write " + f.Type, Err: err}
	}
	return nil
}

func (sess *Session) pingLoop() {
	ticker := time.NewTicker(sess.srv.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sess.writeMu.Lock()
			err := sess.conn.WriteControl(websocket.PingMessage, nil,
				time.Now().Add(sess.srv.config.WriteTimeout))
			sess.writeMu.Unlock()
			if err != nil {
				sess.Close()
				return
			}
		case <-sess.done:
			return
		}
	}
}

// Close ends the session and unmounts its page.
func (sess *Session) Close() {
	sess.closeOnce.Do(func() {
		close(sess.done)
		if sess.bar != nil {
			sess.bar.Stop()
		}
		if sess.app != nil {
			sess.app.Unmount()
		}
		sess.conn.Close()

		srv := sess.srv
		srv.mu.Lock()
		_, registered := srv.sessions[sess.id]
		delete(srv.sessions, sess.id)
		srv.mu.Unlock()
		if registered {
			srv.metrics.sessionClosed()
			sess.logger.Info("session closed")
		}
	})
}

// forwardHeaders keeps the upgrade headers a page handler may depend on.
func forwardHeaders(h http.Header) http.Header {
	out := make(http.Header)
	for _, k := range []string{"Cookie", "Authorization", "Accept-Language", "User-Agent"} {
		if v := h.Values(k); len(v) > 0 {
			out[k] = append([]string(nil), v...)
		}
	}
	return out
}

// bufferedResponse collects an in-process response.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header)}
}

func (b *bufferedResponse) Header() http.Header {
	return b.header
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	if b.status == 0 {
		b.status = http.StatusOK
	}
	return b.body.Write(p)
}

func (b *bufferedResponse) WriteHeader(code int) {
	if b.status == 0 {
		b.status = code
	}
}

var _ http.ResponseWriter = (*bufferedResponse)(nil)
