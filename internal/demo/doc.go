// Package demo is the sample application rendered by the ripple CLI and the
// preview server: a counter on "/", a keyed todo list on "/todos" and a
// detail page on "/todos/{id}".
//
// Interactive elements carry stable id attributes (increment, new-todo,
// toggle-3, ...) so they can be targeted by `ripple render --click`.
package demo
