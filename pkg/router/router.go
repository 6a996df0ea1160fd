package router

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/vango-dev/ripple/pkg/reactive"
	"github.com/vango-dev/ripple/pkg/vdom"
)

// View renders the description for a matched route.
type View func(params Params) *vdom.VNode

// Router maps path patterns to views and tracks the current path.
type Router struct {
	mu       sync.RWMutex
	mux      *chi.Mux
	views    map[string]View
	patterns []string
	notFound View

	rt      *reactive.Runtime
	initial string
	path    *reactive.Signal[string]
	logger  *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithRuntime binds the current-path signal to rt.
func WithRuntime(rt *reactive.Runtime) Option {
	return func(r *Router) {
		if rt != nil {
			r.rt = rt
		}
	}
}

// WithLogger sets the logger for navigation events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithInitialPath sets the path the router starts on. Defaults to "/".
func WithInitialPath(path string) Option {
	return func(r *Router) {
		r.initial = path
	}
}

// New creates a Router with no routes.
func New(opts ...Option) *Router {
	r := &Router{
		mux:      chi.NewRouter(),
		views:    make(map[string]View),
		notFound: defaultNotFound,
		rt:       reactive.Default(),
		initial:  "/",
		logger:   slog.Default().With("component", "router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.path = reactive.NewSignalIn(r.rt, NormalizePath(r.initial))
	return r
}

// Handle registers view for pattern. Registering a pattern again replaces
// its view.
func (r *Router) Handle(pattern string, view View) {
	pattern = NormalizePath(pattern)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.views[pattern]; !exists {
		r.patterns = append(r.patterns, pattern)
		// The handler is never served; the mux is only used for matching.
		r.mux.Get(pattern, http.NotFound)
	}
	r.views[pattern] = view
}

// NotFound sets the view rendered for unmatched paths. A nil view restores
// the default.
func (r *Router) NotFound(view View) {
	if view == nil {
		view = defaultNotFound
	}
	r.mu.Lock()
	r.notFound = view
	r.mu.Unlock()
}

// Routes returns the registered patterns in registration order.
func (r *Router) Routes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.patterns))
	copy(out, r.patterns)
	return out
}

// Navigate changes the current path. target may be a hash ("#/todos"), an
// absolute path ("/todos") or a relative one ("todos"). Navigating to the
// current path does nothing.
func (r *Router) Navigate(target string) {
	path := NormalizePath(target)
	if path == r.path.Peek() {
		return
	}
	r.logger.Debug("navigate", "from", r.path.Peek(), "to", path)
	r.path.Set(path)
}

// Path returns the current path. Reading it inside an effect subscribes the
// effect to navigation.
func (r *Router) Path() string {
	return r.path.Get()
}

// Match finds the view for path. It reports false when no pattern matches.
func (r *Router) Match(path string) (View, Params, bool) {
	path = NormalizePath(path)

	r.mu.RLock()
	defer r.mu.RUnlock()

	rctx := chi.NewRouteContext()
	if !r.mux.Match(rctx, http.MethodGet, path) {
		return nil, nil, false
	}

	view, ok := r.views[rctx.RoutePattern()]
	if !ok {
		return nil, nil, false
	}

	params := make(Params, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[i]
	}
	return view, params, true
}

// Render returns the description for path, falling back to the not-found
// view. The not-found view receives the unmatched path as Params["path"].
func (r *Router) Render(path string) *vdom.VNode {
	if view, params, ok := r.Match(path); ok {
		return view(params)
	}

	r.mu.RLock()
	notFound := r.notFound
	r.mu.RUnlock()
	return notFound(Params{"path": NormalizePath(path)})
}

// View returns a description function that renders the current path. Pass it
// to render.Render to re-render on every navigation.
func (r *Router) View() func() *vdom.VNode {
	return func() *vdom.VNode {
		return r.Render(r.Path())
	}
}

// NormalizePath converts a navigation target to a clean absolute path:
// the leading "#" and any query are dropped, a leading "/" is added and
// trailing slashes are trimmed.
func NormalizePath(target string) string {
	p := strings.TrimPrefix(target, "#")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

func defaultNotFound(Params) *vdom.VNode {
	return vdom.H1("404 Not Found")
}
