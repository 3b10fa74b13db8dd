// Package scheduler batches component re-render jobs into a single deferred
// flush.
//
// Enqueue is the only entry point. Enqueueing a job that is already pending
// is a no-op, so any number of state writes between two flushes re-render a
// component once. The first Enqueue after a flush queues one microtask on
// the host loop; the flush runs every pending job in insertion order.
//
//	loop := scheduler.NewLoop()
//	s := scheduler.New(loop)
//	s.Enqueue(job)
//	s.Enqueue(job) // deduplicated
//	loop.Drain()   // runs job once
//
// A panicking job is recovered and reported; the remaining jobs still run and
// the scheduler always returns to the idle state.
package scheduler
