// Package reactive provides the observable state and effect primitives the
// reconciler drives component updates with.
//
// Dependencies are tracked at runtime: reading a Signal or a Store key while
// an Effect runs subscribes that effect, and a later write notifies it. The
// dependency set of an effect is rebuilt on every run, so branches that stop
// reading a value also stop reacting to it.
//
// # Core Types
//
// Signal[T] holds one value:
//
//	count := reactive.NewSignal(0)
//	count.Get()   // tracked read
//	count.Set(5)  // notifies subscribers when the value changed
//
// Store is an observable string-keyed map with per-key tracking. Component
// state and props are Stores:
//
//	state := reactive.NewStore(map[string]any{"open": false})
//	state.Set("open", true)
//
// Effect re-runs its body when a dependency changes. With a scheduler the
// notification calls the scheduler instead of re-running inline:
//
//	e := reactive.NewEffect(render, reactive.WithScheduler(func() {
//	    queue.Enqueue(job)
//	}))
//
// # Batching
//
// Batch defers notifications until the outermost batch returns, notifying
// each listener once.
//
// # Threading
//
// The tracking context is per goroutine. An effect and the state it reads
// are expected to be used from one goroutine at a time.
package reactive
