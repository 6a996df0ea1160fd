// Package preview serves a live view of a mounted component over HTTP.
//
// The server owns a retained document and a single goroutine that performs
// every operation touching it: mounting, event dispatch, navigation and
// HTML serialization. The reactive runtime is therefore only ever used from
// one goroutine even though many browsers may be connected.
//
// Routes:
//
//	GET /          shell page with the current HTML and a small client script
//	GET /snapshot  the current body HTML
//	GET /ws        websocket carrying events in and HTML out
//	GET /metrics   Prometheus metrics, when a Gatherer is configured
//
// Browsers send JSON messages such as
//
//	{"type":"event","node":12,"event":"click"}
//	{"type":"event","node":14,"event":"input","value":"milk"}
//	{"type":"navigate","path":"#/todos"}
//
// and receive {"type":"html","html":"...","focus":14} after every render, or
// {"type":"error","code":"E302","error":"..."} when a message cannot be
// applied. Element nodes carry data-rid attributes holding their node IDs.
package preview
