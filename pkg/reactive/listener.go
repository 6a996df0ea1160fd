package reactive

// Listener is anything that can be notified when a dependency changes.
// Effects implement it; tests and adapters may provide their own.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	// For effects this reruns the effect body synchronously.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// sourceTracker is implemented by listeners that record the signals they read
// so they can unsubscribe from them before the next run.
type sourceTracker interface {
	addSource(source *signalBase)
}

// Cleanup is a function returned by effects to clean up resources.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()
