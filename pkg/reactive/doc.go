// Package reactive provides the dependency-tracking core for Ripple.
//
// Dependencies are discovered at runtime: reading a Signal while an Effect is
// running subscribes that Effect to the Signal, and writing the Signal reruns
// every subscribed Effect. No dependency list is ever declared up front.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes the running effect)
//	count.Set(5)          // Write (reruns subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Effect reruns whenever a signal it read during its last run changes:
//
//	CreateEffect(func() {
//	    fmt.Println("Count is:", count.Get())
//	})
//
// # Batching
//
// Multiple writes can be coalesced so each affected effect reruns once:
//
//	Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})  // Each dependent effect reruns exactly once, in first-enqueued order
//
// # Runtime
//
// The running-effect cursor and the pending batch live in a Runtime value.
// Package-level functions use the default runtime; independent trees may use
// their own via NewRuntime and NewSignalIn. A Runtime is not safe for
// concurrent use and must be confined to a single goroutine.
//
// Each rerun starts by unsubscribing the effect from every signal it read on
// its previous run, so an effect only ever depends on what its latest run
// actually read. Nested effects restore the enclosing effect as the cursor
// when they finish.
package reactive
