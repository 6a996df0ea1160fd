// Package vtest provides testing helpers for ripple components.
//
// Mount renders a component into a fresh document and returns a Harness that
// drives it the way a user would, by element id:
//
//	func TestCounter(t *testing.T) {
//	    rt := reactive.NewRuntime()
//	    count := reactive.NewSignalIn(rt, 0)
//	    h := vtest.Mount(t, func() *vdom.VNode {
//	        return vdom.Button(vdom.ID("inc"),
//	            vdom.OnClick(func() { count.Set(count.Peek() + 1) }),
//	            vdom.Textf("%d", count.Get()))
//	    }, vtest.WithRuntime(rt))
//
//	    h.Click("inc")
//	    h.ExpectText("inc", "1")
//	}
//
// # Render Assertions
//
// Assertions work on the serialized HTML of the body:
//
//	h.ExpectContains("Welcome")
//	h.ExpectNotContains("Login")
//	h.ExpectAttribute("submit", "disabled", "")
//
// The package-level RenderToString and ExpectContains accept any retained
// node, for tests that mount components themselves.
package vtest
