package dom

// Document owns a retained tree: it creates nodes, holds the singleton body
// element, tracks focus and forwards mutations to an optional Recorder.
type Document struct {
	nextID   uint64
	body     *Node
	recorder Recorder

	// focusRequest is the latest deferred focus target.
	focusRequest *Node
	active       *Node
}

// Option configures a Document.
type Option func(*Document)

// WithRecorder attaches a Recorder that receives every mutation.
func WithRecorder(r Recorder) Option {
	return func(d *Document) {
		d.recorder = r
	}
}

// NewDocument creates a document with an empty body element.
func NewDocument(opts ...Option) *Document {
	d := &Document{}
	d.body = &Node{id: d.newID(), doc: d, kind: KindElement, tag: "body"}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) newID() uint64 {
	d.nextID++
	return d.nextID
}

// Body returns the document's singular body element.
func (d *Document) Body() *Node {
	return d.body
}

// SetRecorder replaces the document's Recorder. A nil recorder disables
// recording.
func (d *Document) SetRecorder(r Recorder) {
	d.recorder = r
}

// CreateElement creates a detached element node.
func (d *Document) CreateElement(tag string) *Node {
	n := &Node{id: d.newID(), doc: d, kind: KindElement, tag: tag}
	n.record(Mutation{Op: OpCreate, Node: n.id, Value: tag})
	return n
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) *Node {
	n := &Node{id: d.newID(), doc: d, kind: KindText, text: text}
	n.record(Mutation{Op: OpCreate, Node: n.id, Value: text})
	return n
}

// CreateFragment creates an empty fragment. Inserting the fragment into a
// parent moves its children there and leaves the fragment empty.
func (d *Document) CreateFragment() *Node {
	return &Node{id: d.newID(), doc: d, kind: KindFragment}
}

// RequestFocus defers focusing n until FlushFocus. A later request wins.
func (d *Document) RequestFocus(n *Node) {
	d.focusRequest = n
}

// FlushFocus applies the pending focus request, if any, and returns the
// focused node. Requests for nodes no longer attached under the body are
// dropped.
func (d *Document) FlushFocus() *Node {
	n := d.focusRequest
	d.focusRequest = nil
	if n == nil || !d.Contains(n) {
		return nil
	}
	n.Focus()
	return n
}

// ActiveElement returns the focused node, or nil.
func (d *Document) ActiveElement() *Node {
	if d.active != nil && !d.Contains(d.active) {
		d.active = nil
	}
	return d.active
}

// Contains reports whether n is attached under the body.
func (d *Document) Contains(n *Node) bool {
	for p := n; p != nil; p = p.parent {
		if p == d.body {
			return true
		}
	}
	return false
}

// NodeByID finds an attached node by its ID.
func (d *Document) NodeByID(id uint64) *Node {
	return FindByID(d.body, id)
}
