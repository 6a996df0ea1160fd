package reactive

// Effect represents a reactive side effect that runs when its dependencies change.
//
// Effects run immediately when created, and re-run whenever any signal they
// read during their latest run changes. Reruns are synchronous: by the time
// the write (or the enclosing batch) that triggered them returns, they have
// completed.
type Effect struct {
	id uint64

	rt *Runtime

	// fn is the effect function to run.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals read during the latest run.
	sources []*signalBase

	// runs counts completed and in-progress executions.
	runs int

	disposed bool
}

// MarkDirty reruns the effect. Implements the Listener interface.
func (e *Effect) MarkDirty() {
	e.run()
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// Runs returns how many times the effect body has been invoked.
func (e *Effect) Runs() int {
	return e.runs
}

// Disposed reports whether Dispose has been called.
func (e *Effect) Disposed() bool {
	return e.disposed
}

// run executes the effect function with e as the tracking cursor.
// This is called during initial creation and when dependencies change.
func (e *Effect) run() {
	if e.disposed {
		return
	}

	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		cleanup()
	}

	// Drop last run's subscriptions; this run re-derives them.
	e.clearSources()

	// The enclosing listener is restored even if fn panics.
	old := e.rt.setCurrent(e)
	defer e.rt.setCurrent(old)

	e.runs++
	e.cleanup = e.fn()
}

// addSource records a signal read during the current run.
func (e *Effect) addSource(source *signalBase) {
	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

func (e *Effect) clearSources() {
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
}

// Dispose runs the pending cleanup, unsubscribes from all sources and stops
// any future reruns. Disposing twice is a no-op.
func (e *Effect) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true

	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		cleanup()
	}

	e.clearSources()
	e.sources = nil
}

// CreateEffectWithCleanup creates and runs a new effect on rt. If fn returns a
// Cleanup, it is called before the effect re-runs or when it is disposed.
func (rt *Runtime) CreateEffectWithCleanup(fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		rt: rt,
		fn: fn,
	}

	// Run immediately; this establishes the first dependency set.
	e.run()

	return e
}

// CreateEffect creates and runs a new effect on rt.
func (rt *Runtime) CreateEffect(fn func()) *Effect {
	return rt.CreateEffectWithCleanup(func() Cleanup {
		fn()
		return nil
	})
}

// CreateEffect creates and runs a new effect on the default runtime.
// The function runs immediately and re-runs when any signal it reads changes.
//
// Example:
//
//	CreateEffect(func() {
//	    fmt.Println("Count is:", count.Get())
//	})
func CreateEffect(fn func()) *Effect {
	return defaultRuntime.CreateEffect(fn)
}

// CreateEffectWithCleanup creates and runs a new effect on the default runtime.
//
// Example:
//
//	CreateEffectWithCleanup(func() Cleanup {
//	    stop := startTicker(interval.Get())
//	    return stop
//	})
func CreateEffectWithCleanup(fn func() Cleanup) *Effect {
	return defaultRuntime.CreateEffectWithCleanup(fn)
}

// OnMount runs fn once without tracking any dependencies.
func OnMount(fn func()) {
	defaultRuntime.Untracked(fn)
}

// OnUpdate creates an effect that skips the callback on the first run.
// This is useful when you only want to react to changes, not the initial value.
//
// The deps function is called to establish dependencies. The callback is only
// called on subsequent runs when those dependencies change.
//
// Example:
//
//	OnUpdate(
//	    func() { _ = count.Get() },           // deps: read signals to track
//	    func() { fmt.Println("Updated!") },   // callback: only on changes
//	)
func OnUpdate(deps func(), callback func()) *Effect {
	first := true
	return CreateEffect(func() {
		deps()
		if first {
			first = false
			return
		}
		Untracked(callback)
	})
}
