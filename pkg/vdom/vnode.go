package vdom

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/ripple/pkg/dom"
)

// VKind is the description type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Function from Props to a description
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode describes one presentation node for a single render.
type VNode struct {
	Kind     VKind         // Node type
	Tag      string        // Element tag name (e.g., "div")
	Comp     ComponentFunc // For KindComponent
	Props    Props         // Attributes, handlers and special properties
	Children []*VNode      // Child descriptions; nil entries are absent slots
	Key      string        // Identity key for keyed reconciliation
	Text     string        // For KindText
	Hooks    Hooks         // Lifecycle hooks
}

// Props holds attributes, event handlers and special properties.
type Props map[string]any

// Hooks are lifecycle callbacks attached to a description.
type Hooks struct {
	// OnMount runs right after a retained node is created for the
	// description, before its properties are applied.
	OnMount func(n *dom.Node)
}

// ComponentFunc renders a description from props. Components are re-invoked
// on every patch; they are not retained as instances.
type ComponentFunc func(props Props) *VNode

// Attr represents a single attribute or property.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler binds a handler to an event. Event is the "on"-prefixed
// property name ("onclick", "oninput").
type EventHandler struct {
	Event   string
	Handler any
}

// Hook attaches an OnMount callback when passed to an element helper.
type Hook func(n *dom.Node)

// Ref captures the retained node created for a description.
type Ref struct {
	node *dom.Node
}

// NewRef creates an empty Ref.
func NewRef() *Ref {
	return &Ref{}
}

// Current returns the captured node, or nil.
func (r *Ref) Current() *dom.Node {
	if r == nil {
		return nil
	}
	return r.node
}

// Set stores n in the ref.
func (r *Ref) Set(n *dom.Node) {
	r.node = n
}

// IsComponent reports whether v describes a component invocation.
func (v *VNode) IsComponent() bool {
	return v != nil && v.Kind == KindComponent
}

// WithKey sets the identity key and returns v.
func (v *VNode) WithKey(key any) *VNode {
	v.Key = keyString(key)
	return v
}

// WithOnMount sets the OnMount hook and returns v.
func (v *VNode) WithOnMount(fn func(n *dom.Node)) *VNode {
	v.Hooks.OnMount = fn
	return v
}

// keyString converts a key value to its string form.
func keyString(key any) string {
	switch k := key.(type) {
	case nil:
		return ""
	case string:
		return k
	case int:
		return strconv.Itoa(k)
	case int64:
		return strconv.FormatInt(k, 10)
	case uint64:
		return strconv.FormatUint(k, 10)
	default:
		return fmt.Sprintf("%v", k)
	}
}

// IsEventProp reports whether a property name binds an event handler.
// Case-insensitive: onclick, onClick and ONCLICK all qualify.
func IsEventProp(name string) bool {
	return len(name) > 2 && (name[0] == 'o' || name[0] == 'O') && (name[1] == 'n' || name[1] == 'N')
}
