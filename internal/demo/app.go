package demo

import (
	"log/slog"

	"github.com/vango-dev/ripple/pkg/reactive"
	"github.com/vango-dev/ripple/pkg/router"
	"github.com/vango-dev/ripple/pkg/vdom"
)

// App holds the demo application's state. All of its signals live on one
// runtime; use it from a single goroutine.
type App struct {
	rt     *reactive.Runtime
	router *router.Router
	logger *slog.Logger

	count  *reactive.Signal[int]
	todos  *reactive.Signal[[]Todo]
	draft  *reactive.Signal[string]
	filter *reactive.Signal[Filter]
	nextID int
}

// Option configures an App.
type Option func(*config)

type config struct {
	path   string
	todos  []string
	logger *slog.Logger
}

// WithInitialPath starts the app on path instead of "/".
func WithInitialPath(path string) Option {
	return func(c *config) {
		c.path = path
	}
}

// WithTodos seeds the todo list.
func WithTodos(titles ...string) Option {
	return func(c *config) {
		c.todos = append(c.todos, titles...)
	}
}

// WithLogger sets the app logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// New creates the demo app on rt.
func New(rt *reactive.Runtime, opts ...Option) *App {
	cfg := &config{path: "/"}
	for _, opt := range opts {
		opt(cfg)
	}
	if rt == nil {
		rt = reactive.Default()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default().With("component", "demo")
	}

	a := &App{
		rt:     rt,
		logger: cfg.logger,
		count:  reactive.NewSignalIn(rt, 0),
		todos:  reactive.NewSignalIn(rt, []Todo(nil)),
		draft:  reactive.NewSignalIn(rt, ""),
		filter: reactive.NewSignalIn(rt, FilterAll),
	}
	for _, title := range cfg.todos {
		a.AddTodo(title)
	}

	a.router = router.New(
		router.WithRuntime(rt),
		router.WithLogger(cfg.logger),
		router.WithInitialPath(cfg.path),
	)
	a.router.Handle("/", a.counterPage)
	a.router.Handle("/todos", a.todosPage)
	a.router.Handle("/todos/{id:[0-9]+}", a.todoPage)
	a.router.NotFound(a.notFoundPage)

	return a
}

// Router returns the app's router.
func (a *App) Router() *router.Router {
	return a.router
}

// Navigate moves the app to path.
func (a *App) Navigate(path string) {
	a.router.Navigate(path)
}

// View returns the app's root description function for render.Render.
func (a *App) View() func() *vdom.VNode {
	return a.layout
}

func (a *App) layout() *vdom.VNode {
	return vdom.Div(vdom.ID("app"),
		vdom.Header(
			vdom.Nav(
				a.router.NavLink("/", "Counter"),
				" ",
				a.router.NavLink("/todos", "Todos"),
			),
		),
		vdom.Main(a.router.Render(a.router.Path())),
	)
}

func (a *App) notFoundPage(p router.Params) *vdom.VNode {
	return vdom.Section(
		vdom.H1("404 Not Found"),
		vdom.P("Nothing lives at ", vdom.Code(p.Get("path")), "."),
		a.router.Link("/", "Back to the counter"),
	)
}
