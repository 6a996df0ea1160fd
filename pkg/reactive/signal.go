package reactive

import "reflect"

// signalBase provides type-erased subscriber management.
// It is embedded in Signal[T] so effects can unsubscribe without knowing T.
type signalBase struct {
	id uint64

	// rt is the runtime whose cursor and batch this signal participates in.
	rt *Runtime

	// subs are the listeners subscribed to this signal.
	subs []Listener
}

// subscribe adds a listener to this signal's subscribers.
// Deduplicates by listener ID to prevent double-subscription.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}

	s.subs = append(s.subs, l)
}

// unsubscribe removes a listener from this signal's subscribers.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			// Remove by swapping with last element (order doesn't matter)
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// subscriberCount returns the number of current subscribers.
func (s *signalBase) subscriberCount() int {
	return len(s.subs)
}

// track subscribes the runtime's running listener, if any.
func (s *signalBase) track() {
	listener := s.rt.current
	if listener == nil {
		return
	}
	s.subscribe(listener)
	if t, ok := listener.(sourceTracker); ok {
		t.addSource(s)
	}
}

// notifySubscribers queues every current subscriber on the runtime.
// Uses copy-before-notify so subscribers may (un)subscribe while running.
func (s *signalBase) notifySubscribers() {
	if len(s.subs) == 0 {
		return
	}
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)

	s.rt.enqueue(subs)
}

// Signal is a reactive value container.
// Reading a Signal's value while an effect is running automatically
// subscribes that effect to receive notifications when the value changes.
//
// A Signal carries no locks. Like its Runtime it belongs to one goroutine;
// callers sharing one across goroutines must serialize access themselves.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// equal is the equality function used to determine if the value changed.
	// If nil, uses default equality checking.
	equal func(T, T) bool
}

// NewSignal creates a new signal on the default runtime.
func NewSignal[T any](initial T) *Signal[T] {
	return NewSignalIn(defaultRuntime, initial)
}

// NewSignalIn creates a new signal bound to rt.
func NewSignalIn[T any](rt *Runtime, initial T) *Signal[T] {
	if rt == nil {
		rt = defaultRuntime
	}
	return &Signal[T]{
		base: signalBase{
			id: nextID(),
			rt: rt,
		},
		value: initial,
	}
}

// CreateSignal creates a signal on the default runtime and returns its read
// and write functions.
//
//	count, setCount := CreateSignal(0)
//	setCount(count() + 1)
func CreateSignal[T any](initial T) (read func() T, write func(T)) {
	s := NewSignal(initial)
	return s.Get, s.Set
}

// Get returns the current value and subscribes the running listener.
func (s *Signal[T]) Get() T {
	s.base.track()
	return s.value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set updates the signal's value and notifies subscribers if the value changed.
// Writing a value equal to the current one is a no-op.
func (s *Signal[T]) Set(value T) {
	if s.equals(s.value, value) {
		return
	}
	s.value = value
	s.base.notifySubscribers()
}

// Update replaces the value with fn applied to the current one.
// fn reads the value without subscribing the running listener.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// WithEquals returns the signal configured with a custom equality function.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// Subscribers returns the number of listeners currently subscribed.
func (s *Signal[T]) Subscribers() int {
	return s.base.subscriberCount()
}

// equals checks if two values are equal using the configured equality function.
func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals uses == when T's dynamic type is comparable and
// reflect.DeepEqual otherwise (slices, maps, funcs, structs holding them).
func defaultEquals[T any](a, b T) bool {
	av, bv := any(a), any(b)
	if av == nil || bv == nil {
		return av == nil && bv == nil
	}
	if reflect.TypeOf(av).Comparable() && reflect.TypeOf(bv).Comparable() {
		return av == bv
	}
	return reflect.DeepEqual(a, b)
}
