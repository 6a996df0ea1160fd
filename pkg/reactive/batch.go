package reactive

// batchQueue is the pending set of one batch: listeners in first-enqueued
// order, each waiting at most once. A listener leaves seen when it is flushed,
// so a later write in the same flush queues it again.
type batchQueue struct {
	items []Listener
	seen  map[uint64]struct{}
}

func newBatchQueue() *batchQueue {
	return &batchQueue{seen: make(map[uint64]struct{})}
}

// push appends l unless a listener with the same ID is already waiting.
func (q *batchQueue) push(l Listener) {
	if l == nil {
		return
	}
	id := l.ID()
	if _, ok := q.seen[id]; ok {
		return
	}
	q.seen[id] = struct{}{}
	q.items = append(q.items, l)
}

// Batch groups multiple signal updates into a single notification phase.
// All listeners affected by writes inside fn are collected, deduplicated, and
// notified once each, in the order they were first enqueued, after fn returns.
//
// Nesting is flat: a Batch call inside an open batch simply runs fn and lets
// the outer batch absorb its writes.
//
// The flush happens even if fn panics; the panic resumes once every queued
// listener has run. Writes made by listeners during the flush extend the same
// pending set: a listener still waiting is not queued twice, but one that has
// already been flushed is queued again, so every write is observed before
// Batch returns. An effect that keeps writing new values to its own
// dependencies therefore never settles.
func (rt *Runtime) Batch(fn func()) {
	if rt.pending != nil {
		fn()
		return
	}

	prev := rt.pending
	q := newBatchQueue()
	rt.pending = q

	defer func() {
		defer func() { rt.pending = prev }()
		// The queue may grow while it is being drained.
		for i := 0; i < len(q.items); i++ {
			l := q.items[i]
			delete(q.seen, l.ID())
			l.MarkDirty()
		}
	}()

	fn()
}

// Batch runs fn as a batch on the default runtime.
//
// Example:
//
//	Batch(func() {
//	    firstName.Set("John")
//	    lastName.Set("Doe")
//	    age.Set(30)
//	})
//	// The render effect reruns once with all three changes
func Batch(fn func()) {
	defaultRuntime.Batch(fn)
}
