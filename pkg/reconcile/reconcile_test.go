package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/vdom"
)

func newTestDoc() (*dom.Document, *dom.MutationLog) {
	log := &dom.MutationLog{}
	return dom.NewDocument(dom.WithRecorder(log)), log
}

func keyedList(keys ...string) *vdom.VNode {
	items := make([]any, 0, len(keys))
	for _, k := range keys {
		items = append(items, vdom.Li(vdom.Key(k), k))
	}
	return vdom.Ul(items...)
}

func plainList(labels ...string) *vdom.VNode {
	items := make([]any, 0, len(labels))
	for _, l := range labels {
		items = append(items, vdom.Li(l))
	}
	return vdom.Ul(items...)
}

func texts(n *dom.Node) []string {
	var out []string
	for _, c := range n.Children() {
		out = append(out, c.TextContent())
	}
	return out
}

func TestPatchCreatesTree(t *testing.T) {
	doc, log := newTestDoc()
	r := New(doc)

	ul := r.Patch(doc.Body(), nil, keyedList("a", "b", "c"))

	if ul.Parent() != doc.Body() {
		t.Fatal("ul should be appended to the container")
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, texts(ul)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	// ul + 3 li + 3 text
	if got := log.Count(dom.OpCreate); got != 7 {
		t.Errorf("creates = %d, want 7", got)
	}
	if got := r.Stats().Created; got != 7 {
		t.Errorf("Stats().Created = %d, want 7", got)
	}
}

func TestKeyedReorderPreservesIdentity(t *testing.T) {
	doc, log := newTestDoc()
	r := New(doc)

	ul := r.Patch(doc.Body(), nil, keyedList("a", "b", "c"))
	before := make(map[string]*dom.Node)
	for _, c := range ul.Children() {
		before[c.Key()] = c
	}
	log.Reset()

	got := r.Patch(doc.Body(), ul, keyedList("c", "a", "b"))

	if got != ul {
		t.Fatal("same-tag patch should update the list in place")
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, texts(ul)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	for i, key := range []string{"c", "a", "b"} {
		if ul.ChildAt(i) != before[key] {
			t.Errorf("child %d: keyed node %q was not preserved", i, key)
		}
	}
	if n := log.Count(dom.OpCreate); n != 0 {
		t.Errorf("creates = %d, want 0", n)
	}
	if n := log.Count(dom.OpInsert); n != 1 {
		t.Errorf("inserts = %d, want 1 (only c moves)", n)
	}
	if n := r.Stats().Moved; n != 1 {
		t.Errorf("Stats().Moved = %d, want 1", n)
	}
}

func TestKeyedRemovalAndInsertion(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)

	ul := r.Patch(doc.Body(), nil, keyedList("a", "b", "c"))
	a, b, c := ul.ChildAt(0), ul.ChildAt(1), ul.ChildAt(2)

	r.Patch(doc.Body(), ul, keyedList("c", "a", "d"))

	if diff := cmp.Diff([]string{"c", "a", "d"}, texts(ul)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if ul.ChildAt(0) != c || ul.ChildAt(1) != a {
		t.Error("keyed nodes c and a should be preserved")
	}
	if ul.ChildAt(2) == c {
		t.Error("d must not reuse the node claimed by c")
	}
	if b.Parent() != nil {
		t.Error("b should be removed")
	}
	if got := r.Stats().Removed; got != 1 {
		t.Errorf("Stats().Removed = %d, want 1", got)
	}
}

func TestUnmatchedKeyFallsBackToPosition(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)

	ul := r.Patch(doc.Body(), nil, keyedList("a", "b"))
	b := ul.ChildAt(1)

	r.Patch(doc.Body(), ul, keyedList("a", "z"))

	if ul.ChildAt(1) != b {
		t.Error("unknown key should reuse the positional node")
	}
	if b.Key() != "z" {
		t.Errorf("Key() = %q, want z", b.Key())
	}
	if got := b.TextContent(); got != "z" {
		t.Errorf("TextContent() = %q, want z", got)
	}
}

func TestUnkeyedReorderOverwritesByPosition(t *testing.T) {
	doc, log := newTestDoc()
	r := New(doc)

	ul := r.Patch(doc.Body(), nil, plainList("a", "b", "c"))
	items := ul.Children()
	log.Reset()

	r.Patch(doc.Body(), ul, plainList("c", "a", "b"))

	if diff := cmp.Diff([]string{"c", "a", "b"}, texts(ul)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	for i, li := range items {
		if ul.ChildAt(i) != li {
			t.Errorf("li %d should stay in place", i)
		}
	}
	// Every li keeps its position; each text child is replaced.
	if n := log.Count(dom.OpCreate); n != 3 {
		t.Errorf("creates = %d, want 3", n)
	}
	if n := log.Count(dom.OpReplace); n != 3 {
		t.Errorf("replaces = %d, want 3", n)
	}
	if n := log.Count(dom.OpInsert); n != 0 {
		t.Errorf("inserts = %d, want 0", n)
	}
}

func TestPositionalFallbackSkipsClaimedKeyedNode(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)

	ul := r.Patch(doc.Body(), nil, vdom.Ul(vdom.Li(vdom.Key("a"), "a"), vdom.Li("x")))
	a := ul.ChildAt(0)

	r.Patch(doc.Body(), ul, vdom.Ul(vdom.Li("new"), vdom.Li(vdom.Key("a"), "a")))

	if diff := cmp.Diff([]string{"new", "a"}, texts(ul)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if ul.ChildAt(1) != a {
		t.Error("keyed node a should be preserved and moved")
	}
	if ul.ChildAt(0) == a {
		t.Error("unkeyed entry must not take the keyed node")
	}
}

func TestDuplicateKeysCreateFreshNodes(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)

	ul := r.Patch(doc.Body(), nil, keyedList("a"))
	a := ul.ChildAt(0)

	r.Patch(doc.Body(), ul, keyedList("a", "a"))

	if ul.ChildCount() != 2 {
		t.Fatalf("ChildCount() = %d, want 2", ul.ChildCount())
	}
	if ul.ChildAt(0) != a {
		t.Error("first duplicate should keep the existing node")
	}
	if ul.ChildAt(1) == a {
		t.Error("second duplicate should get a fresh node")
	}
}

func TestTextNoChurn(t *testing.T) {
	doc, log := newTestDoc()
	r := New(doc)

	p := r.Patch(doc.Body(), nil, vdom.P("hello"))
	text := p.ChildAt(0)
	log.Reset()

	r.Patch(doc.Body(), p, vdom.P("hello"))

	if p.ChildAt(0) != text {
		t.Error("identical text should reuse the node")
	}
	if log.Len() != 0 {
		t.Errorf("mutations = %v, want none", log.Mutations())
	}
	if got := r.Stats().TextReused; got != 1 {
		t.Errorf("Stats().TextReused = %d, want 1", got)
	}
}

func TestTextChangeReplacesNode(t *testing.T) {
	doc, log := newTestDoc()
	r := New(doc)

	p := r.Patch(doc.Body(), nil, vdom.P("a"))
	old := p.ChildAt(0)
	log.Reset()

	r.Patch(doc.Body(), p, vdom.P("b"))

	if p.ChildAt(0) == old {
		t.Error("changed text should get a new node")
	}
	if old.Parent() != nil {
		t.Error("replaced text node should be detached")
	}
	if got := p.TextContent(); got != "b" {
		t.Errorf("TextContent() = %q, want %q", got, "b")
	}
	want := []dom.Op{dom.OpCreate, dom.OpReplace}
	var ops []dom.Op
	for _, m := range log.Mutations() {
		ops = append(ops, m.Op)
	}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestPrimitiveAndAbsentDescriptions(t *testing.T) {
	tests := []struct {
		name string
		desc any
		want string
	}{
		{"nil", nil, ""},
		{"false", false, ""},
		{"nil vnode", (*vdom.VNode)(nil), ""},
		{"string", "hi", "hi"},
		{"int", 42, "42"},
		{"float", 1.5, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := newTestDoc()
			n := New(doc).Patch(doc.Body(), nil, tt.desc)
			if !n.IsText() {
				t.Fatalf("got %v, want a text node", n)
			}
			if n.Text() != tt.want {
				t.Errorf("Text() = %q, want %q", n.Text(), tt.want)
			}
			if n.Parent() != doc.Body() {
				t.Error("text should be appended to the container")
			}
		})
	}
}

func TestSliceBecomesFragment(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)

	frag := r.Patch(doc.Body(), nil, []any{vdom.Span("a"), nil, "b", []*vdom.VNode{vdom.Em("c")}})

	if frag.Kind() != dom.KindFragment {
		t.Fatalf("Kind() = %v, want Fragment", frag.Kind())
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, texts(frag)); diff != "" {
		t.Errorf("fragment children mismatch (-want +got):\n%s", diff)
	}
	if doc.Body().ChildCount() != 0 {
		t.Error("fragment should not be inserted by Patch")
	}

	doc.Body().AppendChild(frag)
	if diff := cmp.Diff([]string{"a", "b", "c"}, texts(doc.Body())); diff != "" {
		t.Errorf("body children mismatch (-want +got):\n%s", diff)
	}
}

func TestSliceDropsAbsentEntries(t *testing.T) {
	tests := []struct {
		name  string
		items []any
		want  []string
	}{
		{"false", []any{"a", false, "b"}, []string{"a", "b"}},
		{"true", []any{true, "a"}, []string{"a"}},
		{"nil node", []any{(*vdom.VNode)(nil), "a", nil}, []string{"a"}},
		{"all absent", []any{false, nil}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _ := newTestDoc()
			frag := New(doc).Patch(doc.Body(), nil, tt.items)
			if diff := cmp.Diff(tt.want, texts(frag)); diff != "" {
				t.Errorf("fragment children mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConditionalOmission(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)

	view := func(show bool) *vdom.VNode {
		return vdom.Div(vdom.If(show, vdom.Span("x")), vdom.P("y"))
	}

	div := r.Patch(doc.Body(), nil, view(true))
	if diff := cmp.Diff([]string{"x", "y"}, texts(div)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}

	r.Patch(doc.Body(), div, view(false))
	if diff := cmp.Diff([]string{"y"}, texts(div)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
	if got := div.ChildAt(0).Tag(); got != "p" {
		t.Errorf("remaining child tag = %q, want p", got)
	}

	r.Patch(doc.Body(), div, view(true))
	if diff := cmp.Diff([]string{"x", "y"}, texts(div)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestTagMismatchReplaces(t *testing.T) {
	doc, log := newTestDoc()
	r := New(doc)

	old := r.Patch(doc.Body(), nil, vdom.Span("x"))
	log.Reset()

	n := r.Patch(doc.Body(), old, vdom.Strong("x"))

	if n == old {
		t.Fatal("different tag should produce a new node")
	}
	if n.Tag() != "strong" || n.Parent() != doc.Body() {
		t.Errorf("got %v under %v, want <strong> under body", n, n.Parent())
	}
	if old.Parent() != nil {
		t.Error("old node should be detached")
	}
	if got := log.Count(dom.OpReplace); got != 1 {
		t.Errorf("replaces = %d, want 1", got)
	}
}

func TestRoundTripIsQuiet(t *testing.T) {
	doc, log := newTestDoc()
	r := New(doc)

	view := func() *vdom.VNode {
		return vdom.Div(vdom.Class("app"),
			vdom.H1("Title"),
			vdom.Input(vdom.Type("checkbox"), vdom.Checked(true), vdom.Disabled(false)),
			vdom.Input(vdom.Value("text"), vdom.OnInput(func(string) {})),
			vdom.Button(vdom.ID("go"), vdom.OnClick(func() {}), "Go"),
			keyedList("a", "b"),
			vdom.When(true, func() *vdom.VNode { return vdom.Span(3) }),
		)
	}

	root := r.Patch(doc.Body(), nil, view())
	log.Reset()

	got := r.Patch(doc.Body(), root, view())

	if got != root {
		t.Fatal("identical description should keep the root")
	}
	if log.Len() != 0 {
		t.Errorf("mutations = %v, want none", log.Mutations())
	}
}

func TestBodySingleton(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)
	body := doc.Body()

	n := r.Patch(body, nil, vdom.Body(vdom.Class("a"), vdom.Div("x")))
	if n != body {
		t.Fatal("body description should bind the document body")
	}
	if body.Parent() != nil {
		t.Error("body must not be spliced anywhere")
	}
	if v, _ := body.Attr("class"); v != "a" {
		t.Errorf("class = %q, want a", v)
	}
	if diff := cmp.Diff([]string{"x"}, texts(body)); diff != "" {
		t.Errorf("body children mismatch (-want +got):\n%s", diff)
	}

	r.Patch(body, n, vdom.Body(vdom.Span("y")))
	if body.HasAttr("class") {
		t.Error("stale class should be removed from body")
	}
	if got := body.ChildAt(0).Tag(); got != "span" {
		t.Errorf("child tag = %q, want span", got)
	}
}

func TestOnMountRunsBeforeProps(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)

	calls := 0
	var sawID bool
	var mounted *dom.Node
	view := func() *vdom.VNode {
		return vdom.Div(vdom.ID("x"), vdom.OnMount(func(n *dom.Node) {
			calls++
			sawID = n.HasAttr("id")
			mounted = n
		}))
	}

	div := r.Patch(doc.Body(), nil, view())
	r.Patch(doc.Body(), div, view())

	if calls != 1 {
		t.Errorf("OnMount calls = %d, want 1", calls)
	}
	if sawID {
		t.Error("OnMount should run before properties are applied")
	}
	if mounted != div {
		t.Error("OnMount should receive the created node")
	}
}

func TestComponentPropagatesKeyAndHooks(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)

	label := func(p vdom.Props) *vdom.VNode {
		return vdom.Span(p["text"])
	}

	var mounted *dom.Node
	desc := vdom.Component(label, vdom.Props{"text": "hi"}).
		WithKey("k").
		WithOnMount(func(n *dom.Node) { mounted = n })

	n := r.Patch(doc.Body(), nil, desc)

	if n.Tag() != "span" || n.TextContent() != "hi" {
		t.Errorf("got %v %q, want <span> hi", n, n.TextContent())
	}
	if n.Key() != "k" {
		t.Errorf("Key() = %q, want k", n.Key())
	}
	if mounted != n {
		t.Error("invocation OnMount should fire on the component output")
	}
}

func TestComponentsReinvokedEachPatch(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)

	calls := 0
	counter := func() *vdom.VNode {
		calls++
		return vdom.Span(calls)
	}

	div := r.Patch(doc.Body(), nil, vdom.Div(counter))
	r.Patch(doc.Body(), div, vdom.Div(counter))

	if calls != 2 {
		t.Errorf("component calls = %d, want 2", calls)
	}
	if got := div.TextContent(); got != "2" {
		t.Errorf("TextContent() = %q, want 2", got)
	}
}

func TestComponentFragmentInChildPosition(t *testing.T) {
	doc, _ := newTestDoc()
	r := New(doc)

	pair := func(p vdom.Props) *vdom.VNode {
		return vdom.Fragment(p["first"], p["second"])
	}
	view := func(first, second, tail string) *vdom.VNode {
		return vdom.Ul(
			vdom.Component(pair, vdom.Props{"first": first, "second": second}),
			tail,
		)
	}

	ul := r.Patch(doc.Body(), nil, view("x", "y", "z"))
	if got := ul.TextContent(); got != "xyz" {
		t.Errorf("TextContent() = %q, want xyz", got)
	}
	if ul.ChildCount() != 3 {
		t.Errorf("ChildCount() = %d, want 3", ul.ChildCount())
	}

	r.Patch(doc.Body(), ul, view("1", "2", "3"))
	if diff := cmp.Diff([]string{"1", "2", "3"}, texts(ul)); diff != "" {
		t.Errorf("children after repatch (-want +got):\n%s", diff)
	}

	empty := func(vdom.Props) *vdom.VNode { return vdom.Fragment() }
	r.Patch(doc.Body(), ul, vdom.Ul(vdom.Component(empty, nil), "only"))
	if diff := cmp.Diff([]string{"only"}, texts(ul)); diff != "" {
		t.Errorf("children with empty fragment (-want +got):\n%s", diff)
	}
}

func TestPackagePatch(t *testing.T) {
	doc := dom.NewDocument()
	n := Patch(doc.Body(), nil, vdom.Div("x"))
	if n.Document() != doc || n.Parent() != doc.Body() {
		t.Error("Patch should create nodes in the container's document")
	}
}
