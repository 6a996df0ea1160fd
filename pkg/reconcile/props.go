package reconcile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/ripple/pkg/dom"
	"github.com/vango-dev/ripple/pkg/vdom"
)

// propClass selects how a property is written to a retained node.
type propClass uint8

const (
	propSkip     propClass = iota // key, children
	propRef                       // ref: *vdom.Ref or func(*dom.Node)
	propFocus                     // autofocus, focus: deferred focus request
	propEvent                     // on*: event listener
	propControl                   // value, checked, selected: live control state
	propBoolAttr                  // boolean attribute presence
	propAttr                      // string attribute
)

// propApplier sets and clears one class of property.
type propApplier struct {
	apply func(r *Reconciler, n *dom.Node, name string, value any)
	clear func(n *dom.Node, name string)
}

// propTable is the closed set of property behaviors. Every property name
// resolves to exactly one entry through classifyProp.
var propTable = [...]propApplier{
	propSkip:     {apply: func(*Reconciler, *dom.Node, string, any) {}, clear: func(*dom.Node, string) {}},
	propRef:      {apply: applyRef, clear: func(*dom.Node, string) {}},
	propFocus:    {apply: applyFocus, clear: func(*dom.Node, string) {}},
	propEvent:    {apply: applyEvent, clear: clearEvent},
	propControl:  {apply: applyControl, clear: (*dom.Node).RemoveProp},
	propBoolAttr: {apply: applyBoolAttr, clear: (*dom.Node).RemoveAttr},
	propAttr:     {apply: applyAttr, clear: (*dom.Node).RemoveAttr},
}

// classifyProp resolves a property name to its behavior.
func classifyProp(name string, value any) propClass {
	switch name {
	case "key", "children":
		return propSkip
	case "ref":
		return propRef
	case "autofocus", "focus":
		return propFocus
	case "value", "checked", "selected":
		return propControl
	}
	if vdom.IsEventProp(name) {
		return propEvent
	}
	if _, ok := value.(bool); ok {
		return propBoolAttr
	}
	return propAttr
}

// applyProps writes props onto n and clears anything set by the previous
// description that is no longer present. Properties are applied in sorted
// order so the mutation stream is deterministic.
func (r *Reconciler) applyProps(n *dom.Node, props vdom.Props) {
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := props[name]
		propTable[classifyProp(name, value)].apply(r, n, name, value)
	}

	for _, name := range n.AppliedProps() {
		if _, ok := props[name]; ok {
			continue
		}
		propTable[classifyProp(name, nil)].clear(n, name)
	}
	n.SetAppliedProps(names)
}

func applyRef(_ *Reconciler, n *dom.Node, _ string, value any) {
	switch ref := value.(type) {
	case *vdom.Ref:
		if ref != nil {
			ref.Set(n)
		}
	case func(*dom.Node):
		if ref != nil {
			ref(n)
		}
	case vdom.Hook:
		if ref != nil {
			ref(n)
		}
	}
}

func applyFocus(_ *Reconciler, n *dom.Node, _ string, value any) {
	if truthy(value) {
		n.Document().RequestFocus(n)
	}
}

func applyEvent(r *Reconciler, n *dom.Node, name string, value any) {
	event := eventName(name)
	if value == nil {
		n.RemoveListener(event)
		return
	}
	h := wrapHandler(value)
	if h == nil {
		r.logger.Warn("unsupported event handler type",
			"event", event,
			"type", fmt.Sprintf("%T", value),
		)
		n.RemoveListener(event)
		return
	}
	n.SetListener(event, h)
}

func clearEvent(n *dom.Node, name string) {
	n.RemoveListener(eventName(name))
}

func applyControl(_ *Reconciler, n *dom.Node, name string, value any) {
	if value == nil {
		n.RemoveProp(name)
		return
	}
	if name == "value" {
		n.SetProp(name, propToString(value))
		return
	}
	n.SetProp(name, truthy(value))
}

func applyBoolAttr(_ *Reconciler, n *dom.Node, name string, value any) {
	if truthy(value) {
		n.SetAttr(name, "")
		return
	}
	n.RemoveAttr(name)
}

func applyAttr(_ *Reconciler, n *dom.Node, name string, value any) {
	if value == nil {
		n.RemoveAttr(name)
		return
	}
	n.SetAttr(name, propToString(value))
}

// eventName strips the "on" prefix: onClick becomes click.
func eventName(prop string) string {
	return strings.ToLower(prop[2:])
}

// wrapHandler converts the supported handler shapes to a dom.Handler.
func wrapHandler(v any) dom.Handler {
	switch h := v.(type) {
	case dom.Handler:
		return h
	case func(dom.Event):
		return h
	case func():
		return func(dom.Event) { h() }
	case func(string):
		return func(ev dom.Event) { h(ev.Value) }
	case func(bool):
		return func(ev dom.Event) { h(ev.Checked) }
	}
	return nil
}

// truthy reports whether a property value is set: false, nil, "" and "false"
// are not.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != "" && val != "false"
	}
	return true
}

// propToString converts a property value to its attribute string form.
func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
