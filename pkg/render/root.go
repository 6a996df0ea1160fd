package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/reactive"
	"github.com/vango-dev/ripple/pkg/reconcile"
	"github.com/vango-dev/ripple/pkg/vdom"
)

// Default tracer name for render spans.
const defaultTracerName = "ripple"

// Root is a mounted component: an effect that keeps a container's content in
// sync with the component's latest description.
type Root struct {
	rt         *reactive.Runtime
	rec        *reconcile.Reconciler
	logger     *slog.Logger
	tracer     trace.Tracer
	onRendered []func(*dom.Node)

	container *dom.Node
	component func() *vdom.VNode

	// node is the retained node produced by the latest render.
	node *dom.Node

	// roots holds the top-level nodes when the latest result was a
	// fragment; they are replaced wholesale on the next render.
	roots []*dom.Node

	effect  *reactive.Effect
	renders int
}

// Option configures a Root.
type Option func(*Root)

// WithRuntime mounts the component on rt instead of the default runtime.
func WithRuntime(rt *reactive.Runtime) Option {
	return func(r *Root) {
		if rt != nil {
			r.rt = rt
		}
	}
}

// WithReconciler patches with rec, which must own the container's document.
func WithReconciler(rec *reconcile.Reconciler) Option {
	return func(r *Root) {
		if rec != nil {
			r.rec = rec
		}
	}
}

// WithLogger sets the logger for render cycles.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTracer sets the tracer used for render spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Root) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// OnRendered registers fn to run with the retained node after every render.
func OnRendered(fn func(n *dom.Node)) Option {
	return func(r *Root) {
		if fn != nil {
			r.onRendered = append(r.onRendered, fn)
		}
	}
}

// Render mounts component into container and returns the live root. The
// component runs immediately and again whenever a signal it read changes.
//
// Panics raised by the component, or by hooks it installs, propagate to the
// caller that triggered the render after being logged.
func Render(component func() *vdom.VNode, container *dom.Node, opts ...Option) *Root {
	r := &Root{
		rt:        reactive.Default(),
		logger:    slog.Default().With("component", "render"),
		tracer:    otel.Tracer(defaultTracerName),
		container: container,
		component: component,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rec == nil {
		r.rec = reconcile.New(container.Document(), reconcile.WithLogger(r.logger))
	}

	r.effect = r.rt.CreateEffect(r.render)
	return r
}

// Node returns the retained node produced by the latest render. For a
// fragment result this is the (now empty) fragment; see Roots.
func (r *Root) Node() *dom.Node {
	return r.node
}

// Roots returns the top-level nodes the root currently owns in the container.
func (r *Root) Roots() []*dom.Node {
	if r.node == nil {
		return nil
	}
	if len(r.roots) > 0 || r.node.Kind() == dom.KindFragment {
		out := make([]*dom.Node, len(r.roots))
		copy(out, r.roots)
		return out
	}
	return []*dom.Node{r.node}
}

// Container returns the node the root renders into.
func (r *Root) Container() *dom.Node {
	return r.container
}

// Renders returns how many times the component has been rendered.
func (r *Root) Renders() int {
	return r.renders
}

// Dispose stops re-rendering. The retained nodes stay in place.
func (r *Root) Dispose() {
	r.effect.Dispose()
}

// render runs one render cycle. It is the body of the root's effect.
func (r *Root) render() {
	r.renders++

	_, span := r.tracer.Start(context.Background(), "ripple.render",
		trace.WithAttributes(attribute.Int("ripple.render", r.renders)),
	)
	defer span.End()

	defer func() {
		if p := recover(); p != nil {
			err := fmt.Errorf("render panic: %v", p)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			r.logger.Error("render failed", "render", r.renders, "error", err)
			panic(p)
		}
	}()

	start := time.Now()
	before := r.rec.Stats()

	desc := r.component()

	var old *dom.Node
	if len(r.roots) == 0 && r.node != nil && r.node.Kind() != dom.KindFragment {
		old = r.node
	}
	n := r.rec.Patch(r.container, old, desc)

	if n.Kind() == dom.KindFragment {
		roots := n.Children()
		r.detachRoots(old)
		r.container.AppendChild(n)
		r.roots = roots
	} else {
		r.detachRoots(nil)
		r.roots = nil
	}
	r.node = n

	r.rec.Document().FlushFocus()

	after := r.rec.Stats()
	span.SetAttributes(
		attribute.Int("ripple.nodes_created", after.Created-before.Created),
		attribute.Int("ripple.nodes_replaced", after.Replaced-before.Replaced),
		attribute.Int("ripple.nodes_moved", after.Moved-before.Moved),
		attribute.Int("ripple.nodes_removed", after.Removed-before.Removed),
	)
	span.SetStatus(codes.Ok, "")

	r.logger.Debug("rendered",
		"render", r.renders,
		"created", after.Created-before.Created,
		"replaced", after.Replaced-before.Replaced,
		"moved", after.Moved-before.Moved,
		"removed", after.Removed-before.Removed,
		"duration", time.Since(start),
	)

	r.rt.Untracked(func() {
		for _, fn := range r.onRendered {
			fn(n)
		}
	})
}

// detachRoots removes the previous render's fragment roots, and extra (the
// previous single node) when it was not reused, from the container.
func (r *Root) detachRoots(extra *dom.Node) {
	for _, n := range r.roots {
		if n.Parent() == r.container {
			r.container.RemoveChild(n)
		}
	}
	if extra != nil && extra.Parent() == r.container {
		r.container.RemoveChild(extra)
	}
}
