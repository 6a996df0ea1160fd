// Package reconcile converges a retained dom tree to a freshly computed
// vdom description with a small set of in-place edits.
//
// Patch dispatches on the description: absent values become an empty text
// anchor, slices become fragments, primitives take the text path, components
// are invoked and their output patched, mismatched kinds are replaced, and
// matching elements are updated in place.
//
// Children are matched in one pass that composes two strategies: an index of
// the parent's keyed children is consulted first, and anything without a
// key match falls back to the child at the same position. Only explicit keys
// preserve node identity across reorders; unkeyed siblings are matched purely
// by position, so reordering them overwrites content instead of moving nodes.
package reconcile
