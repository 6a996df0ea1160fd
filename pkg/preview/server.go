package preview

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/ripple/internal/errors"
	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/reactive"
	"github.com/vango-dev/ripple/pkg/reconcile"
	"github.com/vango-dev/ripple/pkg/render"
	"github.com/vango-dev/ripple/pkg/vdom"
)

// ErrClosed is returned by Do after the server has been closed.
var ErrClosed = stderrors.New("preview: server closed")

// Config configures a preview Server.
type Config struct {
	// Address is the listen address used by Run.
	// Default: "localhost:3000"
	Address string

	// Title is the shell page title.
	Title string

	// Pretty indents the HTML sent to clients.
	Pretty bool

	// Runtime is the reactive runtime the mounted component and its signals
	// live on. Default: reactive.Default()
	Runtime *reactive.Runtime

	// Navigate handles navigate messages. Navigation is rejected when nil.
	Navigate func(path string)

	// Registerer receives preview and reconciler metrics when set.
	Registerer prometheus.Registerer

	// Gatherer is served on /metrics when set.
	Gatherer prometheus.Gatherer

	// Logger defaults to slog.Default().With("component", "preview").
	Logger *slog.Logger

	// WriteTimeout bounds each websocket write.
	// Default: 5s
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Address:         "localhost:3000",
		Title:           "Ripple preview",
		WriteTimeout:    5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server serves a live preview of one mounted component.
type Server struct {
	config   *Config
	doc      *dom.Document
	rt       *reactive.Runtime
	renderer *render.Renderer
	logger   *slog.Logger
	metrics  *metrics
	upgrader websocket.Upgrader
	router   chi.Router

	// root is only touched on the loop goroutine.
	root *render.Root

	tasks     chan task
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	mu       sync.RWMutex
	clients  map[*client]struct{}
	snapshot Message

	httpServer *http.Server
}

type task struct {
	fn   func()
	done chan any
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(msg Message, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// New creates a Server and starts its loop goroutine. Call Close (or
// Shutdown) to stop it.
func New(config *Config) *Server {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	if config.Address == "" {
		config.Address = defaults.Address
	}
	if config.Title == "" {
		config.Title = defaults.Title
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}

	s := &Server{
		config: config,
		doc:    dom.NewDocument(),
		rt:     config.Runtime,
		renderer: render.NewRenderer(render.RendererConfig{
			Pretty:  config.Pretty,
			NodeIDs: true,
		}),
		logger: config.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Preview is a local development tool.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		tasks:   make(chan task),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		clients: make(map[*client]struct{}),
	}
	if s.rt == nil {
		s.rt = reactive.Default()
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "preview")
	}
	if config.Registerer != nil {
		s.metrics = newMetrics(config.Registerer)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handlePage)
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/ws", s.handleWebSocket)
	if config.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{}))
	}
	s.router = r

	go s.loop()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Document returns the retained document. It must only be used inside Do.
func (s *Server) Document() *dom.Document {
	return s.doc
}

// Runtime returns the reactive runtime the server renders on.
func (s *Server) Runtime() *reactive.Runtime {
	return s.rt
}

// loop runs tasks one at a time until Close.
func (s *Server) loop() {
	defer close(s.stopped)
	for {
		select {
		case t := <-s.tasks:
			t.done <- s.runTask(t.fn)
		case <-s.quit:
			return
		}
	}
}

func (s *Server) runTask(fn func()) (panicked any) {
	defer func() {
		if p := recover(); p != nil {
			s.logger.Error("task panicked", "panic", p)
			panicked = p
		}
	}()
	fn()
	return nil
}

// Do runs fn on the server's loop goroutine and waits for it to finish.
// Every access to the document or to signals the mounted component reads
// must go through Do. fn must not call Do itself.
func (s *Server) Do(fn func()) error {
	t := task{fn: fn, done: make(chan any, 1)}
	select {
	case s.tasks <- t:
	case <-s.stopped:
		return ErrClosed
	}
	select {
	case p := <-t.done:
		if p != nil {
			return fmt.Errorf("preview: task panicked: %v", p)
		}
		return nil
	case <-s.stopped:
		return ErrClosed
	}
}

// Mount renders component into the document body, replacing any previously
// mounted component, and pushes HTML to clients after every render.
func (s *Server) Mount(component func() *vdom.VNode, opts ...render.Option) error {
	base := []render.Option{
		render.WithRuntime(s.rt),
		render.WithLogger(s.logger),
		render.OnRendered(s.publish),
	}
	if s.config.Registerer != nil {
		rec := reconcile.New(s.doc,
			reconcile.WithLogger(s.logger),
			reconcile.WithMetrics(s.config.Registerer),
		)
		base = append(base, render.WithReconciler(rec))
	}

	return s.Do(func() {
		if s.root != nil {
			s.root.Dispose()
			for _, n := range s.root.Roots() {
				n.Remove()
			}
		}
		s.root = render.Render(component, s.doc.Body(), append(base, opts...)...)
	})
}

// Snapshot returns the body HTML from the latest render.
func (s *Server) Snapshot() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.HTML
}

// ClientCount returns the number of connected websockets.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// publish serializes the body and broadcasts it. It runs on the loop
// goroutine as a render callback.
func (s *Server) publish(*dom.Node) {
	html, err := s.bodyHTML()
	if err != nil {
		s.logger.Error("snapshot failed", "error", err)
		return
	}

	msg := Message{Type: TypeHTML, HTML: html}
	if active := s.doc.ActiveElement(); active != nil {
		msg.Focus = active.ID()
	}

	s.mu.Lock()
	s.snapshot = msg
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	s.metrics.push()
	for _, c := range clients {
		if err := c.send(msg, s.config.WriteTimeout); err != nil {
			s.logger.Debug("dropping client", "error", err)
			s.removeClient(c)
		}
	}
}

// bodyHTML renders the body's children.
func (s *Server) bodyHTML() (string, error) {
	var buf bytes.Buffer
	for _, n := range s.doc.Body().Children() {
		if err := s.renderer.RenderToWriter(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var (
		buf       bytes.Buffer
		renderErr error
	)
	err := s.Do(func() {
		renderErr = s.renderer.RenderPage(&buf, render.PageData{
			Body:    s.doc.Body(),
			Title:   s.config.Title,
			Scripts: []render.ScriptTag{{Inline: clientScript}},
		})
	})
	if err == nil {
		err = renderErr
	}
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(s.Snapshot()))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	c := &client{conn: conn}

	s.mu.Lock()
	s.clients[c] = struct{}{}
	initial := s.snapshot
	s.mu.Unlock()
	s.metrics.clientDelta(1)
	s.logger.Debug("client connected", "remote", r.RemoteAddr)

	defer s.removeClient(c)

	if initial.Type == TypeHTML {
		if err := c.send(initial, s.config.WriteTimeout); err != nil {
			return
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if reply := s.handleMessage(data); reply != nil {
			if err := c.send(*reply, s.config.WriteTimeout); err != nil {
				return
			}
		}
	}
}

// removeClient unregisters and closes c. It is safe to call more than once.
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if ok {
		s.metrics.clientDelta(-1)
		c.conn.Close()
	}
}

// handleMessage applies one client message and returns an error reply, or
// nil when the message was applied.
func (s *Server) handleMessage(data []byte) *Message {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.metrics.message("invalid", "error")
		return errorReply(errors.New("E301").Wrap(err))
	}

	var err *errors.RippleError
	switch msg.Type {
	case TypeEvent:
		err = s.dispatch(msg)
	case TypeNavigate:
		err = s.navigate(msg.Path)
	default:
		err = errors.New("E301").WithDetail(fmt.Sprintf("Unknown message type %q", msg.Type))
	}

	if err != nil {
		s.metrics.message(msg.Type, "error")
		s.logger.Debug("message rejected", "type", msg.Type, "error", err)
		return errorReply(err)
	}
	s.metrics.message(msg.Type, "ok")
	return nil
}

// dispatch delivers a remote event to the addressed node.
func (s *Server) dispatch(msg Message) *errors.RippleError {
	if msg.Event == "" {
		return errors.New("E301").WithDetail("Event message without an event name")
	}

	var notFound bool
	err := s.Do(func() {
		n := s.doc.NodeByID(msg.Node)
		if n == nil {
			notFound = true
			return
		}
		n.Dispatch(dom.Event{
			Type:    msg.Event,
			Value:   msg.Value,
			Checked: msg.Checked,
			Key:     msg.Key,
		})
	})
	if err != nil {
		return errors.Newf(errors.CategoryPreview, "%s handler failed", msg.Event).Wrap(err)
	}
	if notFound {
		return errors.New("E302").WithDetail(fmt.Sprintf("Node %d is not in the document", msg.Node))
	}
	return nil
}

func (s *Server) navigate(path string) *errors.RippleError {
	if s.config.Navigate == nil {
		return errors.New("E301").WithDetail("Navigation is not enabled for this preview")
	}
	if err := s.Do(func() { s.config.Navigate(path) }); err != nil {
		return errors.Newf(errors.CategoryPreview, "navigation to %s failed", path).Wrap(err)
	}
	return nil
}

func errorReply(err *errors.RippleError) *Message {
	return &Message{Type: TypeError, Code: err.Code, Error: err.Error()}
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return errors.New("E300").
			WithDetail("Could not listen on " + s.config.Address).
			WithSuggestion("Pick another port with --port or preview.port").
			Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully. A serve
// failure also triggers shutdown and is returned.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		s.logger.Info("preview server starting", "address", ln.Addr().String())
		if err := s.httpServer.Serve(ln); !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	})
	return g.Wait()
}

// Shutdown closes client connections, stops the HTTP server and the loop.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.Close()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("preview server shutdown complete")
	return nil
}

// Close disposes the mounted component, disconnects clients and stops the
// loop goroutine. Later calls to Do return ErrClosed.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		_ = s.Do(func() {
			if s.root != nil {
				s.root.Dispose()
			}
		})
		close(s.quit)
		<-s.stopped

		s.mu.Lock()
		clients := make([]*client, 0, len(s.clients))
		for c := range s.clients {
			clients = append(clients, c)
		}
		s.mu.Unlock()
		for _, c := range clients {
			s.removeClient(c)
		}
	})
}
