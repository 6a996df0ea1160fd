package reconcile

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/vdom"
)

// Stats counts the structural edits a Reconciler has made.
type Stats struct {
	Created    int // Elements and text nodes created
	Replaced   int // Nodes replaced in place by a new node
	Moved      int // Existing children repositioned among siblings
	Removed    int // Trailing children trimmed
	TextReused int // Text nodes kept because their content was unchanged
	Patches    int // Top-level Patch calls
}

// Reconciler patches retained trees owned by one Document.
//
// A Reconciler is not safe for concurrent use; confine it to the goroutine
// that owns the document.
type Reconciler struct {
	doc     *dom.Document
	logger  *slog.Logger
	metrics *metrics
	stats   Stats
	depth   int
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics registers reconciliation metrics on reg under the "ripple"
// namespace.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(r *Reconciler) {
		if reg != nil {
			r.metrics = newMetrics(reg, "ripple")
		}
	}
}

// New creates a Reconciler for doc.
func New(doc *dom.Document, opts ...Option) *Reconciler {
	r := &Reconciler{
		doc:    doc,
		logger: slog.Default().With("component", "reconcile"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Document returns the document the reconciler creates nodes in.
func (r *Reconciler) Document() *dom.Document {
	return r.doc
}

// Stats returns the accumulated edit counts.
func (r *Reconciler) Stats() Stats {
	return r.stats
}

// ResetStats zeroes the accumulated edit counts.
func (r *Reconciler) ResetStats() {
	r.stats = Stats{}
}

// Patch converges old to desc with a throwaway Reconciler on container's
// document. Use New to keep stats or metrics across patches.
func Patch(container, old *dom.Node, desc any) *dom.Node {
	return New(container.Document()).Patch(container, old, desc)
}

// Patch converges old, a child of container or nil, to desc and returns the
// node that now represents desc. When the result is a different node it has
// been spliced into container in old's place, or appended when old was not a
// child of container.
//
// desc may be nil, false, a *vdom.VNode, a []*vdom.VNode or []any (rendered as
// a fragment), or a string or number (rendered as text).
func (r *Reconciler) Patch(container, old *dom.Node, desc any) *dom.Node {
	if r.depth == 0 {
		r.stats.Patches++
		if r.metrics != nil {
			start := time.Now()
			defer func() {
				r.metrics.patchDuration.Observe(time.Since(start).Seconds())
			}()
		}
	}
	r.depth++
	defer func() { r.depth-- }()

	return r.patch(container, old, desc)
}

func (r *Reconciler) patch(container, old *dom.Node, desc any) *dom.Node {
	switch d := desc.(type) {
	case nil:
		return r.patchText(container, old, "")
	case bool:
		return r.patchText(container, old, "")
	case *vdom.VNode:
		if d == nil {
			return r.patchText(container, old, "")
		}
		return r.patchNode(container, old, d)
	case []*vdom.VNode:
		items := make([]any, len(d))
		for i, v := range d {
			items[i] = v
		}
		return r.patchFragment(items)
	case []any:
		return r.patchFragment(d)
	}

	if s, ok := vdom.Primitive(desc); ok {
		return r.patchText(container, old, s)
	}
	return r.patchText(container, old, fmt.Sprint(desc))
}

// patchNode dispatches a structural description.
func (r *Reconciler) patchNode(container, old *dom.Node, d *vdom.VNode) *dom.Node {
	switch d.Kind {
	case vdom.KindText:
		return r.patchText(container, old, d.Text)
	case vdom.KindFragment:
		items := make([]any, len(d.Children))
		for i, c := range d.Children {
			items[i] = c
		}
		return r.patchFragment(items)
	case vdom.KindComponent:
		return r.patchComponent(container, old, d)
	}

	if old == nil || old.Kind() != dom.KindElement || !strings.EqualFold(old.Tag(), d.Tag) {
		return r.create(container, old, d)
	}

	r.update(old, d)
	return old
}

// patchText reuses old when it is a text node with identical content and
// otherwise creates a fresh text node in old's place.
func (r *Reconciler) patchText(container, old *dom.Node, text string) *dom.Node {
	if old.IsText() && old.Text() == text {
		r.stats.TextReused++
		if r.metrics != nil {
			r.metrics.textReused.Inc()
		}
		return old
	}

	n := r.doc.CreateText(text)
	r.countCreated()
	r.splice(container, old, n)
	return n
}

// patchFragment builds a new fragment whose children are freshly patched
// entries. Absent entries (nil, booleans) are dropped. Inserting the fragment
// moves those children into the target.
func (r *Reconciler) patchFragment(items []any) *dom.Node {
	frag := r.doc.CreateFragment()
	for _, item := range items {
		if absent(item) {
			continue
		}
		n := r.patch(frag, nil, item)
		if n.Kind() == dom.KindFragment {
			frag.AppendChild(n)
		}
	}
	return frag
}

// absent reports whether a fragment entry contributes no output slot.
func absent(item any) bool {
	switch v := item.(type) {
	case nil, bool:
		return true
	case *vdom.VNode:
		return v == nil
	}
	return false
}

// patchComponent invokes the component and patches its output. The
// invocation's lifecycle hooks and key carry over onto the output.
func (r *Reconciler) patchComponent(container, old *dom.Node, d *vdom.VNode) *dom.Node {
	out := d.Comp(d.Props)
	if out == nil {
		return r.patchText(container, old, "")
	}

	result := *out
	if d.Hooks.OnMount != nil {
		result.Hooks = d.Hooks
	}
	if d.Key != "" {
		result.Key = d.Key
	}
	return r.patchNode(container, old, &result)
}

// create builds a node for d, fires its OnMount hook before any property is
// applied, fills it, and splices it in place of old. The body tag binds to
// the document's existing body instead of creating a second one.
func (r *Reconciler) create(container, old *dom.Node, d *vdom.VNode) *dom.Node {
	isBody := strings.EqualFold(d.Tag, "body")

	var n *dom.Node
	if isBody {
		n = r.doc.Body()
	} else {
		n = r.doc.CreateElement(d.Tag)
		r.countCreated()
	}

	if d.Hooks.OnMount != nil {
		d.Hooks.OnMount(n)
	}

	r.update(n, d)

	if !isBody {
		r.splice(container, old, n)
	}
	return n
}

// update applies d's key, properties and children to the existing node n.
func (r *Reconciler) update(n *dom.Node, d *vdom.VNode) {
	n.SetKey(d.Key)
	r.applyProps(n, d.Props)
	r.ReconcileChildren(n, d.Children)
}

// splice puts n where old was in container, or appends it.
func (r *Reconciler) splice(container, old, n *dom.Node) {
	if container == nil {
		return
	}
	if old != nil && old.Parent() == container {
		container.ReplaceChild(n, old)
		r.stats.Replaced++
		if r.metrics != nil {
			r.metrics.replaced.Inc()
		}
		return
	}
	container.AppendChild(n)
}

// ReconcileChildren converges parent's children to the given descriptions.
// nil entries are absent slots and are skipped.
//
// Each entry is matched against a snapshot of the current children: an entry
// with a key takes the existing non-text child with that key; otherwise it
// takes the child at the same index, unless that child was already claimed
// by a keyed entry. The matched child (or nil) is patched, the results are
// placed in order, and any leftover trailing children are removed. A result
// that is a fragment is spliced in as its children, created fresh.
func (r *Reconciler) ReconcileChildren(parent *dom.Node, children []*vdom.VNode) {
	snapshot := parent.Children()

	keyed := make(map[string]*dom.Node)
	for _, c := range snapshot {
		if c.IsText() || c.Key() == "" {
			continue
		}
		if _, dup := keyed[c.Key()]; !dup {
			keyed[c.Key()] = c
		}
	}

	items := make([]*vdom.VNode, 0, len(children))
	for _, c := range children {
		if c != nil {
			items = append(items, c)
		}
	}

	targets := make([]*dom.Node, len(items))
	claimed := make(map[*dom.Node]bool, len(items))

	// Keyed matches first, so positional fallback cannot steal them.
	for i, c := range items {
		if c.Kind == vdom.KindText || c.Key == "" {
			continue
		}
		if n := keyed[c.Key]; n != nil && !claimed[n] {
			targets[i] = n
			claimed[n] = true
		}
	}
	for i, c := range items {
		if targets[i] != nil || (c.Kind != vdom.KindText && c.Key != "" && keyed[c.Key] != nil) {
			continue
		}
		if i < len(snapshot) && !claimed[snapshot[i]] {
			targets[i] = snapshot[i]
			claimed[snapshot[i]] = true
		}
	}

	// A component may return a fragment; its children take its place.
	out := make([]*dom.Node, 0, len(items))
	for i, c := range items {
		n := r.patchNode(parent, targets[i], c)
		if n.Kind() == dom.KindFragment {
			out = append(out, n.Children()...)
			continue
		}
		out = append(out, n)
	}

	existing := make(map[*dom.Node]bool, len(snapshot))
	for _, c := range snapshot {
		existing[c] = true
	}

	for i, n := range out {
		ref := parent.ChildAt(i)
		if ref == n {
			continue
		}
		parent.InsertBefore(n, ref)
		if existing[n] {
			r.stats.Moved++
			if r.metrics != nil {
				r.metrics.moved.Inc()
			}
		}
	}

	for parent.ChildCount() > len(out) {
		parent.RemoveChild(parent.ChildAt(parent.ChildCount() - 1))
		r.stats.Removed++
		if r.metrics != nil {
			r.metrics.removed.Inc()
		}
	}
}

func (r *Reconciler) countCreated() {
	r.stats.Created++
	if r.metrics != nil {
		r.metrics.created.Inc()
	}
}
