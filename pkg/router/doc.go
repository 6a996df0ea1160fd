// Package router switches which description function a render root invokes
// based on a hash-style path held in a signal.
//
// Patterns use chi syntax and are matched with a chi.Mux, so named
// parameters ("/todos/{id}"), regexp constraints ("/todos/{id:[0-9]+}") and
// trailing wildcards ("/files/*") all work:
//
//	r := router.New()
//	r.Handle("/", home)
//	r.Handle("/todos/{id}", todoDetail)
//	render.Render(r.View(), doc.Body())
//
//	r.Navigate("#/todos/3") // re-renders with Params{"id": "3"}
//
// Unmatched paths render the not-found view, which defaults to a fixed
// "404 Not Found" heading.
package router
