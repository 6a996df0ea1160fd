package dom

// Walk visits root and its descendants depth-first in document order.
// Returning false from fn stops the walk.
func Walk(root *Node, fn func(*Node) bool) bool {
	if root == nil {
		return true
	}
	if !fn(root) {
		return false
	}
	for _, c := range root.children {
		if !Walk(c, fn) {
			return false
		}
	}
	return true
}

// Find returns the first node under root (inclusive) matching pred.
func Find(root *Node, pred func(*Node) bool) *Node {
	var found *Node
	Walk(root, func(n *Node) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node under root (inclusive) matching pred.
func FindAll(root *Node, pred func(*Node) bool) []*Node {
	var out []*Node
	Walk(root, func(n *Node) bool {
		if pred(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindByID returns the node with the given node ID.
func FindByID(root *Node, id uint64) *Node {
	return Find(root, func(n *Node) bool { return n.id == id })
}

// QueryTag returns all elements with the given tag.
func QueryTag(root *Node, tag string) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.kind == KindElement && n.tag == tag
	})
}

// QueryAttr returns the first element whose attribute name equals value.
func QueryAttr(root *Node, name, value string) *Node {
	return Find(root, func(n *Node) bool {
		v, ok := n.attrs[name]
		return ok && v == value
	})
}

// GetElementByID returns the element whose id attribute equals id.
func GetElementByID(root *Node, id string) *Node {
	return QueryAttr(root, "id", id)
}
