package preview

// MessageType identifies a websocket message.
type MessageType string

const (
	// Client to server.
	TypeEvent    MessageType = "event"
	TypeNavigate MessageType = "navigate"

	// Server to client.
	TypeHTML  MessageType = "html"
	TypeError MessageType = "error"
)

// Message is the JSON envelope exchanged over the websocket.
type Message struct {
	Type MessageType `json:"type"`

	// Event fields.
	Node    uint64 `json:"node,omitempty"`
	Event   string `json:"event,omitempty"`
	Value   string `json:"value,omitempty"`
	Checked bool   `json:"checked,omitempty"`
	Key     string `json:"key,omitempty"`

	// Path is the navigation target ("#/todos", "/todos").
	Path string `json:"path,omitempty"`

	// HTML is the rendered body content.
	HTML string `json:"html,omitempty"`

	// Focus is the ID of the active element after a render.
	Focus uint64 `json:"focus,omitempty"`

	// Error fields.
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}
