package router

import (
	"github.com/vango-dev/ripple/pkg/vdom"
)

// Link creates an anchor that navigates r to path when clicked. The href
// carries the hash form of the path.
func (r *Router) Link(path string, children ...any) *vdom.VNode {
	path = NormalizePath(path)
	args := []any{
		vdom.Href("#" + path),
		vdom.OnClick(func() { r.Navigate(path) }),
	}
	return vdom.A(append(args, children...)...)
}

// NavLink is a Link that carries the "active" class while path is current.
// Reading the current path subscribes the rendering effect.
func (r *Router) NavLink(path string, children ...any) *vdom.VNode {
	link := r.Link(path, children...)
	if r.Path() == NormalizePath(path) {
		link.Props["class"] = "active"
		link.Props["aria-current"] = "page"
	}
	return link
}
