package vtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/reactive"
	"github.com/vango-dev/ripple/pkg/render"
	"github.com/vango-dev/ripple/pkg/vdom"
)

// Harness is a mounted component under test.
type Harness struct {
	t    testing.TB
	doc  *dom.Document
	root *render.Root
}

type config struct {
	rt     *reactive.Runtime
	logger *slog.Logger
	render []render.Option
}

// Option configures Mount.
type Option func(*config)

// WithRuntime mounts on rt. Signals the component reads must live on the
// same runtime.
func WithRuntime(rt *reactive.Runtime) Option {
	return func(c *config) {
		c.rt = rt
	}
}

// WithLogger sets the render logger. By default logs are discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRenderOptions passes extra options to render.Render.
func WithRenderOptions(opts ...render.Option) Option {
	return func(c *config) {
		c.render = append(c.render, opts...)
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Mount renders component into the body of a new document. The root is
// disposed when the test ends.
func Mount(t testing.TB, component func() *vdom.VNode, opts ...Option) *Harness {
	t.Helper()
	cfg := &config{rt: reactive.Default(), logger: DiscardLogger()}
	for _, opt := range opts {
		opt(cfg)
	}

	doc := dom.NewDocument()
	renderOpts := append([]render.Option{
		render.WithRuntime(cfg.rt),
		render.WithLogger(cfg.logger),
	}, cfg.render...)
	root := render.Render(component, doc.Body(), renderOpts...)
	t.Cleanup(root.Dispose)

	return &Harness{t: t, doc: doc, root: root}
}

// Document returns the harness document.
func (h *Harness) Document() *dom.Document { return h.doc }

// Root returns the mounted root.
func (h *Harness) Root() *render.Root { return h.root }

// Body returns the document body.
func (h *Harness) Body() *dom.Node { return h.doc.Body() }

// Find returns the element with the given id attribute, or nil.
func (h *Harness) Find(id string) *dom.Node {
	return dom.GetElementByID(h.doc.Body(), id)
}

// ByID returns the element with the given id attribute and fails the test
// when there is none.
func (h *Harness) ByID(id string) *dom.Node {
	h.t.Helper()
	n := h.Find(id)
	if n == nil {
		h.t.Fatalf("element #%s not found in:\n%s", id, truncate(h.HTML(), 500))
	}
	return n
}

// Dispatch sends ev to the element with the given id.
func (h *Harness) Dispatch(id string, ev dom.Event) {
	h.t.Helper()
	h.ByID(id).Dispatch(ev)
}

// Click clicks the element with the given id.
func (h *Harness) Click(id string) {
	h.t.Helper()
	h.Dispatch(id, dom.Event{Type: "click"})
}

// Input types value into the element with the given id.
func (h *Harness) Input(id, value string) {
	h.t.Helper()
	h.Dispatch(id, dom.Event{Type: "input", Value: value})
}

// KeyDown presses key on the element with the given id.
func (h *Harness) KeyDown(id, key string) {
	h.t.Helper()
	h.Dispatch(id, dom.Event{Type: "keydown", Key: key})
}

// Text returns the text content of the element with the given id.
func (h *Harness) Text(id string) string {
	h.t.Helper()
	return h.ByID(id).TextContent()
}

// HTML returns the serialized body content.
func (h *Harness) HTML() string {
	var b strings.Builder
	for _, n := range h.doc.Body().Children() {
		b.WriteString(RenderToString(n))
	}
	return b.String()
}

// ExpectText asserts the text content of the element with the given id.
func (h *Harness) ExpectText(id, want string) {
	h.t.Helper()
	if got := h.Text(id); got != want {
		h.t.Errorf("#%s text = %q, want %q", id, got, want)
	}
}

// ExpectContains asserts that the body HTML contains expected.
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	if html := h.HTML(); !strings.Contains(html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the body HTML does not contain unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	if html := h.HTML(); strings.Contains(html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectAttribute asserts an attribute of the element with the given id.
func (h *Harness) ExpectAttribute(id, attr, value string) {
	h.t.Helper()
	got, ok := h.ByID(id).Attr(attr)
	if !ok {
		h.t.Errorf("#%s has no %s attribute", id, attr)
		return
	}
	if got != value {
		h.t.Errorf("#%s %s = %q, want %q", id, attr, got, value)
	}
}

// ExpectNoAttribute asserts that the element with the given id lacks attr.
func (h *Harness) ExpectNoAttribute(id, attr string) {
	h.t.Helper()
	if v, ok := h.ByID(id).Attr(attr); ok {
		h.t.Errorf("#%s %s = %q, want no attribute", id, attr, v)
	}
}

// RenderToString serializes n. Serialization errors yield "".
func RenderToString(n *dom.Node) string {
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(n)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that the serialized node contains expected.
func ExpectContains(t testing.TB, n *dom.Node, expected string) {
	t.Helper()
	html := RenderToString(n)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the serialized node does not contain
// unexpected.
func ExpectNotContains(t testing.TB, n *dom.Node, unexpected string) {
	t.Helper()
	html := RenderToString(n)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
