// Package dom provides the retained presentation tree that Ripple keeps in
// sync with freshly computed descriptions.
//
// A Document owns a singleton body element and hands out Nodes. Nodes are
// mutated in place: children are inserted, moved, replaced and removed with
// DOM-like semantics (inserting a node that already has a parent moves it,
// appending a fragment moves the fragment's children). Every structural or
// attribute mutation is reported to the Document's Recorder, which tests and
// tooling use to verify that reconciliation performs minimal work.
//
// Focus requests are deferred: RequestFocus only records the target and
// FlushFocus applies the most recent request.
package dom
