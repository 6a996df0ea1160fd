package dom

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Kind is the retained node type discriminator.
type Kind uint8

const (
	KindElement  Kind = iota // <div>, <button>, etc.
	KindText                 // Plain text node
	KindFragment             // Detached grouping; its children move on insertion
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Node is a live node in the retained tree. A node is exclusively owned by its
// parent; the reconciler is expected to be its only writer.
type Node struct {
	id   uint64
	doc  *Document
	kind Kind
	tag  string
	text string

	// key is the identity key used for keyed matching among siblings.
	key string

	attrs     map[string]string
	props     map[string]any
	listeners map[string]Handler

	// applied lists the property names set from the last description,
	// so properties dropped from a later description can be cleared.
	applied []string

	parent   *Node
	children []*Node
}

// ID returns the document-unique node identifier.
func (n *Node) ID() uint64 { return n.id }

// Kind returns the node type.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the element tag name, or "" for text and fragment nodes.
func (n *Node) Tag() string { return n.tag }

// Text returns the content of a text node.
func (n *Node) Text() string { return n.text }

// Key returns the node's identity key.
func (n *Node) Key() string { return n.key }

// SetKey sets the node's identity key.
func (n *Node) SetKey(key string) { n.key = key }

// Document returns the document that created the node.
func (n *Node) Document() *Document { return n.doc }

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n != nil && n.kind == KindText }

// Parent returns the node's parent, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a snapshot of the node's children.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// ChildAt returns the child at index i, or nil when out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AppendChild inserts child as the last child of n.
// A child that already has a parent is moved. Appending a fragment moves the
// fragment's children instead.
func (n *Node) AppendChild(child *Node) {
	n.InsertBefore(child, nil)
}

// InsertBefore inserts child immediately before ref. A nil ref, or a ref that
// is not a child of n, appends.
func (n *Node) InsertBefore(child, ref *Node) {
	if child == nil || child == ref {
		return
	}
	if child.kind == KindFragment {
		for _, c := range child.Children() {
			n.InsertBefore(c, ref)
		}
		return
	}

	if child.parent != nil {
		child.parent.detach(child)
	}

	idx := len(n.children)
	var refID uint64
	if ref != nil {
		if i := n.IndexOf(ref); i >= 0 {
			idx = i
			refID = ref.id
		}
	}

	n.children = append(n.children, nil)
	copy(n.children[idx+1:], n.children[idx:])
	n.children[idx] = child
	child.parent = n

	n.record(Mutation{Op: OpInsert, Node: child.id, Parent: n.id, Ref: refID})
}

// ReplaceChild puts child in the position of old. If old is not a child of n,
// child is appended.
func (n *Node) ReplaceChild(child, old *Node) {
	if child == nil || child == old {
		return
	}
	idx := n.IndexOf(old)
	if idx < 0 || child.kind == KindFragment {
		n.InsertBefore(child, old)
		if idx >= 0 {
			n.RemoveChild(old)
		}
		return
	}

	if child.parent != nil {
		child.parent.detach(child)
		idx = n.IndexOf(old)
	}

	n.children[idx] = child
	child.parent = n
	old.parent = nil

	n.record(Mutation{Op: OpReplace, Node: child.id, Parent: n.id, Ref: old.id})
}

// RemoveChild detaches child from n. It is a no-op if child is not a child of n.
func (n *Node) RemoveChild(child *Node) {
	if child == nil || child.parent != n {
		return
	}
	n.detach(child)
	n.record(Mutation{Op: OpRemove, Node: child.id, Parent: n.id})
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// detach unlinks child without recording; moves record a single Insert.
func (n *Node) detach(child *Node) {
	idx := n.IndexOf(child)
	if idx < 0 {
		return
	}
	copy(n.children[idx:], n.children[idx+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil
}

// SetText changes the content of a text node.
func (n *Node) SetText(text string) {
	if n.text == text {
		return
	}
	n.text = text
	n.record(Mutation{Op: OpSetText, Node: n.id, Value: text})
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.kind == KindText {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Attr returns the attribute value and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// HasAttr reports whether the attribute is present.
func (n *Node) HasAttr(name string) bool {
	_, ok := n.attrs[name]
	return ok
}

// SetAttr sets an attribute. Setting the current value is a no-op.
func (n *Node) SetAttr(name, value string) {
	if old, ok := n.attrs[name]; ok && old == value {
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]string)
	}
	n.attrs[name] = value
	n.record(Mutation{Op: OpSetAttr, Node: n.id, Key: name, Value: value})
}

// RemoveAttr removes an attribute. Removing an absent attribute is a no-op.
func (n *Node) RemoveAttr(name string) {
	if _, ok := n.attrs[name]; !ok {
		return
	}
	delete(n.attrs, name)
	n.record(Mutation{Op: OpRemoveAttr, Node: n.id, Key: name})
}

// AttrNames returns the attribute names in sorted order.
func (n *Node) AttrNames() []string {
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Prop returns a form-control property (value, checked, selected).
func (n *Node) Prop(name string) (any, bool) {
	v, ok := n.props[name]
	return v, ok
}

// SetProp assigns a form-control property directly.
func (n *Node) SetProp(name string, value any) {
	if old, ok := n.props[name]; ok && reflect.DeepEqual(old, value) {
		return
	}
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[name] = value
	n.record(Mutation{Op: OpSetProp, Node: n.id, Key: name, Value: fmt.Sprint(value)})
}

// RemoveProp clears a form-control property.
func (n *Node) RemoveProp(name string) {
	if _, ok := n.props[name]; !ok {
		return
	}
	delete(n.props, name)
	n.record(Mutation{Op: OpSetProp, Node: n.id, Key: name})
}

// PropNames returns the property names in sorted order.
func (n *Node) PropNames() []string {
	names := make([]string, 0, len(n.props))
	for name := range n.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AppliedProps returns the property names applied from the last description.
func (n *Node) AppliedProps() []string {
	return n.applied
}

// SetAppliedProps records the property names applied from a description.
func (n *Node) SetAppliedProps(names []string) {
	n.applied = names
}

// Focus makes n the document's active element immediately.
func (n *Node) Focus() {
	if n.doc == nil || n.doc.active == n {
		return
	}
	n.doc.active = n
	n.record(Mutation{Op: OpFocus, Node: n.id})
}

// String returns a short description for debugging.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case KindText:
		return fmt.Sprintf("#%d %q", n.id, n.text)
	case KindFragment:
		return fmt.Sprintf("#%d fragment(%d)", n.id, len(n.children))
	default:
		if n.key != "" {
			return fmt.Sprintf("#%d <%s key=%s>", n.id, n.tag, n.key)
		}
		return fmt.Sprintf("#%d <%s>", n.id, n.tag)
	}
}

func (n *Node) record(m Mutation) {
	if n.doc != nil && n.doc.recorder != nil {
		n.doc.recorder.Record(m)
	}
}
