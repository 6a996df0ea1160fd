// Package vdom provides the description layer for Ripple.
//
// A VNode is an immutable-per-render description of one presentation node:
// a kind (an element tag, text, a fragment or a component function), a
// property map, a normalized child list, an optional identity key and
// lifecycle hooks. Descriptions are produced fresh on every render and
// consumed by the reconciler, which converges the retained dom tree to them.
//
// # Building descriptions
//
// DescribeNode mirrors a plain (kind, props, children) call:
//
//	DescribeNode("ul", Props{"class": "list"},
//	    DescribeNode("li", Props{"key": "a"}, "first"),
//	    DescribeNode("li", Props{"key": "b"}, "second"),
//	)
//
// Element helpers accept variadic attributes, handlers and children:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    Button(OnClick(func() { count.Update(inc) }), "+1"),
//	)
//
// # Children
//
// A child slice is flattened into its parent's child list. Strings and
// numbers become text descriptions. nil and false become absent slots that
// the reconciler drops without reserving a position, which is what makes
// conditional children such as If(cond, node) work.
//
// # Components
//
// A component is a plain function from Props to a VNode. It is re-invoked on
// every patch and keeps no per-instance state; persistent state belongs in
// signals created in an enclosing scope.
package vdom
