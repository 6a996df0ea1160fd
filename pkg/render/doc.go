// Package render mounts reactive components into a retained tree and
// serializes retained trees to HTML.
//
// # Mounting
//
// Render wraps a description-producing function in an effect. Each time a
// signal read by the function changes, the function runs again, its result
// is patched against the previously retained node, and any deferred focus
// request is applied:
//
//	doc := dom.NewDocument()
//	count := reactive.NewSignal(0)
//	root := render.Render(func() *vdom.VNode {
//	    return vdom.Button(vdom.OnClick(func() { count.Update(inc) }),
//	        vdom.Textf("Count: %d", count.Get()))
//	}, doc.Body())
//	defer root.Dispose()
//
// If the function returns a fragment, its children become the top-level
// nodes of the root and are swapped out wholesale on the next render.
//
// # HTML
//
// Renderer writes a retained tree as HTML. Text and attribute values are
// escaped, void elements have no closing tag, attributes are sorted, and the
// live value/checked/selected properties of form controls are written as
// attributes so the output reflects current state:
//
//	renderer := render.NewRenderer(render.RendererConfig{Pretty: true})
//	html, err := renderer.RenderToString(doc.Body())
//
// RenderPage wraps a tree in a complete HTML document.
package render
