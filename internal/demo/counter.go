package demo

import (
	"github.com/vango-dev/ripple/pkg/router"
	"github.com/vango-dev/ripple/pkg/vdom"
)

// Count returns the counter value without subscribing.
func (a *App) Count() int {
	return a.count.Peek()
}

// Increment adds one to the counter.
func (a *App) Increment() {
	a.count.Update(func(n int) int { return n + 1 })
}

// Decrement subtracts one from the counter.
func (a *App) Decrement() {
	a.count.Update(func(n int) int { return n - 1 })
}

// Reset sets the counter to zero.
func (a *App) Reset() {
	a.count.Set(0)
}

func (a *App) counterPage(router.Params) *vdom.VNode {
	count := a.count.Get()

	return vdom.Section(vdom.ID("counter"),
		vdom.H1("Counter"),
		vdom.Div(
			vdom.Button(vdom.ID("decrement"), vdom.OnClick(a.Decrement), "-"),
			vdom.Span(vdom.ID("count"), vdom.Textf("%d", count)),
			vdom.Button(vdom.ID("increment"), vdom.OnClick(a.Increment), "+"),
		),
		vdom.Button(vdom.ID("reset"), vdom.Disabled(count == 0), vdom.OnClick(a.Reset), "Reset"),
		vdom.If(count < 0, vdom.P(vdom.Class("warning"), "Below zero")),
	)
}
