package dom

import "strings"

// Event is a synthetic event delivered to listeners.
type Event struct {
	// Type is the lower-case event name ("click", "input", ...).
	Type string

	// Target is the node the event was dispatched on.
	Target *Node

	// CurrentTarget is the node whose listener is running.
	CurrentTarget *Node

	// Value carries the new control value for input and change events.
	Value string

	// Checked carries the checkbox state after a click or change.
	Checked bool

	// Key is the key name for keyboard events.
	Key string
}

// Handler is an event listener.
type Handler func(Event)

// SetListener binds h to the named event, replacing any previous listener.
// Event names are case-insensitive.
func (n *Node) SetListener(event string, h Handler) {
	if h == nil {
		n.RemoveListener(event)
		return
	}
	if n.listeners == nil {
		n.listeners = make(map[string]Handler)
	}
	n.listeners[strings.ToLower(event)] = h
}

// RemoveListener unbinds the named event.
func (n *Node) RemoveListener(event string) {
	delete(n.listeners, strings.ToLower(event))
}

// Listener returns the handler bound to the named event, or nil.
func (n *Node) Listener(event string) Handler {
	return n.listeners[strings.ToLower(event)]
}

// HasListeners reports whether any event handler is bound to n.
func (n *Node) HasListeners() bool {
	return len(n.listeners) > 0
}

// Dispatch delivers ev to n and then to each ancestor, mimicking bubbling.
// Input and change events update the target's value property first, and
// clicks on checkbox inputs toggle the checked property, as a browser would.
// It returns the number of listeners invoked.
func (n *Node) Dispatch(ev Event) int {
	ev.Type = strings.ToLower(ev.Type)
	ev.Target = n

	switch ev.Type {
	case "input", "change":
		n.SetProp("value", ev.Value)
	case "click":
		if n.tag == "input" {
			if t, _ := n.Attr("type"); t == "checkbox" {
				checked, _ := n.props["checked"].(bool)
				ev.Checked = !checked
				n.SetProp("checked", ev.Checked)
			}
		}
	}

	invoked := 0
	for cur := n; cur != nil; cur = cur.parent {
		h := cur.listeners[ev.Type]
		if h == nil {
			continue
		}
		ev.CurrentTarget = cur
		h(ev)
		invoked++
	}
	return invoked
}
