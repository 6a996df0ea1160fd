package vdom

import (
	"fmt"
	"strconv"
)

// DescribeNode builds a description from a kind, a property map and children.
//
// kind is either a string tag naming an element or a component function
// (ComponentFunc, func(Props) *VNode or func() *VNode). props may be nil. A
// "key" property becomes the node's identity key. Children are normalized:
// slices are flattened into the list, strings and numbers become text, and
// nil or false become absent slots.
//
// For components the normalized children are passed in props["children"].
func DescribeNode(kind any, props Props, children ...any) *VNode {
	p := make(Props, len(props))
	for k, v := range props {
		p[k] = v
	}
	kids := normalizeChildren(children)

	var node *VNode
	switch k := kind.(type) {
	case string:
		node = &VNode{Kind: KindElement, Tag: k, Props: p, Children: kids}
	case ComponentFunc:
		node = component(k, p, kids)
	case func(Props) *VNode:
		node = component(k, p, kids)
	case func() *VNode:
		node = component(func(Props) *VNode { return k() }, p, kids)
	default:
		panic(fmt.Sprintf("vdom: DescribeNode kind must be a tag or component function, got %T", kind))
	}

	if key, ok := p["key"]; ok {
		node.Key = keyString(key)
	}
	return node
}

func component(fn ComponentFunc, props Props, children []*VNode) *VNode {
	if len(children) > 0 {
		props["children"] = children
	}
	return &VNode{Kind: KindComponent, Comp: fn, Props: props}
}

// Component creates a component description. Use it to place a component in
// an element helper's argument list.
func Component(fn ComponentFunc, props Props) *VNode {
	return DescribeNode(fn, props)
}

// ChildrenOf returns the children passed to a component through its props.
func ChildrenOf(props Props) []*VNode {
	kids, _ := props["children"].([]*VNode)
	return kids
}

// normalizeChildren converts a mixed argument list into child descriptions.
func normalizeChildren(args []any) []*VNode {
	out := make([]*VNode, 0, len(args))
	for _, arg := range args {
		out = appendChild(out, arg)
	}
	return out
}

// appendChild appends the normalized form of v to out. Slices and fragment
// descriptions are spliced in place.
func appendChild(out []*VNode, v any) []*VNode {
	switch c := v.(type) {
	case nil:
		return append(out, nil)
	case bool:
		// false (and true) render nothing, as in `cond && node`.
		return append(out, nil)
	case *VNode:
		if c != nil && c.Kind == KindFragment {
			return append(out, c.Children...)
		}
		return append(out, c)
	case []*VNode:
		for _, n := range c {
			out = appendChild(out, n)
		}
		return out
	case []any:
		for _, n := range c {
			out = appendChild(out, n)
		}
		return out
	case []string:
		for _, s := range c {
			out = append(out, Text(s))
		}
		return out
	case ComponentFunc:
		return append(out, component(c, Props{}, nil))
	case func(Props) *VNode:
		return append(out, component(c, Props{}, nil))
	case func() *VNode:
		return append(out, component(func(Props) *VNode { return c() }, Props{}, nil))
	}

	if s, ok := Primitive(v); ok {
		return append(out, Text(s))
	}
	return append(out, Text(fmt.Sprint(v)))
}

// Primitive reports whether v is a string or number and returns its text form.
func Primitive(v any) (string, bool) {
	switch p := v.(type) {
	case string:
		return p, true
	case int:
		return strconv.Itoa(p), true
	case int8:
		return strconv.FormatInt(int64(p), 10), true
	case int16:
		return strconv.FormatInt(int64(p), 10), true
	case int32:
		return strconv.FormatInt(int64(p), 10), true
	case int64:
		return strconv.FormatInt(p, 10), true
	case uint:
		return strconv.FormatUint(uint64(p), 10), true
	case uint8:
		return strconv.FormatUint(uint64(p), 10), true
	case uint16:
		return strconv.FormatUint(uint64(p), 10), true
	case uint32:
		return strconv.FormatUint(uint64(p), 10), true
	case uint64:
		return strconv.FormatUint(p, 10), true
	case float32:
		return strconv.FormatFloat(float64(p), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64), true
	case fmt.Stringer:
		return p.String(), true
	}
	return "", false
}
