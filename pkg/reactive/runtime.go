package reactive

// Runtime holds the reactive bookkeeping shared by a group of signals and
// effects: the running-listener cursor and the pending batch queue.
//
// All execution is synchronous, so a Runtime is only ever touched by one
// goroutine at a time. Confine each Runtime to a single goroutine.
type Runtime struct {
	// current is what's currently tracking dependencies.
	// When a signal is read, it subscribes this listener.
	// nil means no tracking (reads don't create subscriptions).
	current Listener

	// pending accumulates listeners to notify when the open batch completes.
	// nil means no batch is open.
	pending *batchQueue
}

// NewRuntime creates an empty runtime with no running effect and no open batch.
func NewRuntime() *Runtime {
	return &Runtime{}
}

var defaultRuntime = NewRuntime()

// Default returns the process-wide runtime used by the package-level
// constructors. Everything created through it shares one cursor and one
// batch queue.
func Default() *Runtime {
	return defaultRuntime
}

// Current returns the listener currently tracking dependencies, or nil.
func (rt *Runtime) Current() Listener {
	return rt.current
}

// setCurrent swaps the tracking cursor and returns the previous listener so it
// can be restored.
func (rt *Runtime) setCurrent(l Listener) Listener {
	old := rt.current
	rt.current = l
	return old
}

// Batching reports whether a batch is currently open on this runtime.
func (rt *Runtime) Batching() bool {
	return rt.pending != nil
}

// WithListener runs fn with l as the tracking cursor and restores the previous
// cursor afterwards, even if fn panics.
func (rt *Runtime) WithListener(l Listener, fn func()) {
	old := rt.setCurrent(l)
	defer rt.setCurrent(old)
	fn()
}

// Untracked runs fn without tracking signal reads as dependencies.
func (rt *Runtime) Untracked(fn func()) {
	rt.WithListener(nil, fn)
}

// enqueue schedules l for notification. Outside a batch it opens an implicit
// single-write batch so the notification is flushed before returning.
func (rt *Runtime) enqueue(subs []Listener) {
	if rt.pending != nil {
		for _, sub := range subs {
			rt.pending.push(sub)
		}
		return
	}
	rt.Batch(func() {
		for _, sub := range subs {
			rt.pending.push(sub)
		}
	})
}

// WithListener runs fn on the default runtime with l as the tracking cursor.
func WithListener(l Listener, fn func()) {
	defaultRuntime.WithListener(l, fn)
}

// Untracked runs fn on the default runtime without tracking signal reads.
//
// Example:
//
//	Untracked(func() {
//	    // Reading count here won't subscribe the running effect
//	    fmt.Println("Current value:", count.Get())
//	})
//
// For single signal reads, signal.Peek() is clearer.
func Untracked(fn func()) {
	defaultRuntime.Untracked(fn)
}
