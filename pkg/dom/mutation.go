package dom

import "fmt"

// Op is the type of a recorded tree mutation.
type Op uint8

const (
	OpCreate     Op = 0x01 // Node created
	OpInsert     Op = 0x02 // Node inserted or moved under a parent
	OpRemove     Op = 0x03 // Node detached from its parent
	OpReplace    Op = 0x04 // Node replaced an existing child
	OpSetText    Op = 0x05 // Text content changed
	OpSetAttr    Op = 0x06 // Attribute set or changed
	OpRemoveAttr Op = 0x07 // Attribute removed
	OpSetProp    Op = 0x08 // Form-control property assigned
	OpFocus      Op = 0x09 // Focus applied
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "Create"
	case OpInsert:
		return "Insert"
	case OpRemove:
		return "Remove"
	case OpReplace:
		return "Replace"
	case OpSetText:
		return "SetText"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetProp:
		return "SetProp"
	case OpFocus:
		return "Focus"
	default:
		return "Unknown"
	}
}

// Mutation is a single recorded change to the retained tree.
type Mutation struct {
	Op     Op     // Operation type
	Node   uint64 // Target node ID
	Parent uint64 // Parent for Insert/Remove/Replace
	Ref    uint64 // Insert-before reference, or the replaced node for Replace
	Key    string // Attribute or property name
	Value  string // New value
}

// String renders the mutation for logs and test failure output.
func (m Mutation) String() string {
	switch m.Op {
	case OpInsert, OpRemove:
		return fmt.Sprintf("%s(#%d parent=#%d ref=#%d)", m.Op, m.Node, m.Parent, m.Ref)
	case OpReplace:
		return fmt.Sprintf("%s(#%d parent=#%d old=#%d)", m.Op, m.Node, m.Parent, m.Ref)
	case OpSetAttr, OpRemoveAttr, OpSetProp:
		return fmt.Sprintf("%s(#%d %s=%q)", m.Op, m.Node, m.Key, m.Value)
	default:
		return fmt.Sprintf("%s(#%d %q)", m.Op, m.Node, m.Value)
	}
}

// Recorder receives every mutation applied to a Document's nodes.
type Recorder interface {
	Record(m Mutation)
}

// MutationLog is a Recorder that keeps mutations in memory.
type MutationLog struct {
	entries []Mutation
}

// Record implements Recorder.
func (l *MutationLog) Record(m Mutation) {
	l.entries = append(l.entries, m)
}

// Mutations returns the recorded mutations in order.
func (l *MutationLog) Mutations() []Mutation {
	out := make([]Mutation, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded mutations.
func (l *MutationLog) Len() int {
	return len(l.entries)
}

// Count returns how many recorded mutations have the given op.
func (l *MutationLog) Count(op Op) int {
	n := 0
	for _, m := range l.entries {
		if m.Op == op {
			n++
		}
	}
	return n
}

// Reset discards all recorded mutations.
func (l *MutationLog) Reset() {
	l.entries = l.entries[:0]
}
