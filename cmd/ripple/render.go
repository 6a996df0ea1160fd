package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/ripple/internal/demo"
	"github.com/vango-dev/ripple/internal/errors"
	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/reactive"
	"github.com/vango-dev/ripple/pkg/reconcile"
	"github.com/vango-dev/ripple/pkg/render"
)

// renderOptions are the inputs of one `ripple render` run.
type renderOptions struct {
	route   string
	adds    []string
	clicks  []string
	filter  string
	pretty  bool
	nodeIDs bool
	page    bool
	title   string
	stats   bool
}

func renderCmd(c *cli) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo application to HTML",
		Long: `Render the demo application and print the resulting HTML.

Todos given with --add are created first, then each --click is
dispatched, in order, to the element with that id attribute. The
tree is re-rendered after every step and printed once at the end.

Examples:
  ripple render
  ripple render --click increment --click increment
  ripple render --route /todos --add milk --add eggs --click toggle-1
  ripple render --route /todos/2 --add a --add b --pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("route") {
				opts.route = c.cfg.Render.Route
			}
			if !flags.Changed("pretty") {
				opts.pretty = c.cfg.Render.Pretty
			}
			if !flags.Changed("node-ids") {
				opts.nodeIDs = c.cfg.Render.NodeIDs
			}
			opts.title = c.cfg.Preview.Title

			html, stats, err := renderDemo(opts, c.logger)
			if err != nil {
				return err
			}

			fmt.Fprint(c.stdout, html)
			if opts.stats {
				info(c.stderr, "renders %d, created %d, replaced %d, moved %d, removed %d",
					stats.Patches, stats.Created, stats.Replaced, stats.Moved, stats.Removed)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.route, "route", "r", "/", "Initial route (default from config)")
	flags.StringArrayVarP(&opts.adds, "add", "a", nil, "Add a todo with this title (repeatable)")
	flags.StringArrayVar(&opts.clicks, "click", nil, "Click the element with this id (repeatable)")
	flags.StringVar(&opts.filter, "filter", "", "Todo filter: all, active or done")
	flags.BoolVarP(&opts.pretty, "pretty", "p", false, "Indent the HTML output")
	flags.BoolVar(&opts.nodeIDs, "node-ids", false, "Add data-rid node id attributes")
	flags.BoolVar(&opts.page, "page", false, "Wrap the output in a complete HTML document")
	flags.BoolVar(&opts.stats, "stats", false, "Print reconciliation statistics to stderr")

	return cmd
}

// renderDemo mounts the demo app, replays the requested interactions and
// serializes the final tree.
func renderDemo(opts renderOptions, logger *slog.Logger) (string, reconcile.Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var filter demo.Filter
	switch opts.filter {
	case "":
	case string(demo.FilterAll), string(demo.FilterActive), string(demo.FilterDone):
		filter = demo.Filter(opts.filter)
	default:
		return "", reconcile.Stats{}, errors.New("E200").
			WithDetail(fmt.Sprintf("--filter %q is not a todo filter", opts.filter)).
			WithSuggestion("Use all, active or done")
	}

	rt := reactive.NewRuntime()
	app := demo.New(rt,
		demo.WithInitialPath(opts.route),
		demo.WithTodos(opts.adds...),
		demo.WithLogger(logger.With("component", "demo")),
	)

	doc := dom.NewDocument()
	rec := reconcile.New(doc, reconcile.WithLogger(logger.With("component", "reconcile")))
	root := render.Render(app.View(), doc.Body(),
		render.WithRuntime(rt),
		render.WithReconciler(rec),
		render.WithLogger(logger.With("component", "render")),
	)
	defer root.Dispose()

	if filter != "" {
		app.SetFilter(filter)
	}

	for _, id := range opts.clicks {
		n := dom.GetElementByID(doc.Body(), id)
		if n == nil {
			return "", rec.Stats(), errors.New("E201").
				WithDetail(fmt.Sprintf("No element with id %q after %d render(s)", id, root.Renders())).
				WithSuggestion("Available ids: " + strings.Join(elementIDs(doc.Body()), ", "))
		}
		logger.Debug("click", "id", id, "node", n.ID())
		n.Dispatch(dom.Event{Type: "click"})
	}

	renderer := render.NewRenderer(render.RendererConfig{
		Pretty:  opts.pretty,
		NodeIDs: opts.nodeIDs,
	})

	var buf bytes.Buffer
	if opts.page {
		if err := renderer.RenderPage(&buf, render.PageData{Body: doc.Body(), Title: opts.title}); err != nil {
			return "", rec.Stats(), err
		}
	} else {
		for _, n := range doc.Body().Children() {
			if err := renderer.RenderToWriter(&buf, n); err != nil {
				return "", rec.Stats(), err
			}
		}
	}

	html := buf.String()
	if !strings.HasSuffix(html, "\n") {
		html += "\n"
	}
	return html, rec.Stats(), nil
}

// elementIDs lists the id attributes present under root.
func elementIDs(root *dom.Node) []string {
	var ids []string
	for _, n := range dom.FindAll(root, func(n *dom.Node) bool { return n.HasAttr("id") }) {
		id, _ := n.Attr("id")
		ids = append(ids, id)
	}
	return ids
}
