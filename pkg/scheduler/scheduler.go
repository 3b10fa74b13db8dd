package scheduler

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/telemetry"
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger for job failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithMetrics records flushes and job outcomes.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(s *Scheduler) {
		s.metrics = m
	}
}

// WithTracer wraps every flush in a span.
func WithTracer(t *telemetry.Tracer) Option {
	return func(s *Scheduler) {
		s.tracer = t
	}
}

// WithErrorHandler receives an R006 diagnostic for every panicking job.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Scheduler) {
		s.onError = fn
	}
}

// WithDepthOrder runs each batch in ascending job depth instead of
// insertion order, so parents re-render before their children. Jobs of
// equal depth keep insertion order.
func WithDepthOrder() Option {
	return func(s *Scheduler) {
		s.depthOrder = true
	}
}

// Scheduler deduplicates jobs and runs them in one flush per microtask.
type Scheduler struct {
	loop Microtasks

	logger     *slog.Logger
	metrics    *telemetry.Metrics
	tracer     *telemetry.Tracer
	onError    func(error)
	depthOrder bool

	mu       sync.Mutex
	queue    []*Job
	queued   map[*Job]struct{}
	pending  bool // a flush microtask is queued or running
	flushing bool
	ran      map[*Job]struct{}
	carry    []*Job
}

// New creates a scheduler that queues its flushes on loop.
func New(loop Microtasks, opts ...Option) *Scheduler {
	s := &Scheduler{
		loop:   loop,
		logger: slog.Default(),
		queued: make(map[*Job]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue schedules job for the next flush. A job already waiting is not
// added twice. A job that already ran in the flush currently executing is
// carried over to a fresh flush.
func (s *Scheduler) Enqueue(job *Job) {
	if job == nil {
		return
	}

	s.mu.Lock()
	if _, ok := s.queued[job]; ok {
		if s.flushing {
			s.carryLocked(job)
		}
		s.mu.Unlock()
		return
	}
	s.queued[job] = struct{}{}
	s.queue = append(s.queue, job)
	schedule := !s.pending
	s.pending = true
	s.mu.Unlock()

	if schedule {
		s.loop.Queue(s.flush)
	}
}

// carryLocked defers an already-run job to the next flush.
func (s *Scheduler) carryLocked(job *Job) {
	if _, done := s.ran[job]; !done {
		return
	}
	for _, c := range s.carry {
		if c == job {
			return
		}
	}
	s.carry = append(s.carry, job)
}

// flush runs every pending job. Jobs enqueued while flushing join the batch.
func (s *Scheduler) flush() {
	start := time.Now()
	_, span := s.tracer.Start(context.Background(), "scheduler.flush")

	s.mu.Lock()
	s.flushing = true
	s.ran = make(map[*Job]struct{}, len(s.queue))
	s.mu.Unlock()

	ran, panics := 0, 0
	defer func() {
		s.mu.Lock()
		carry := s.carry
		s.queue = nil
		s.queued = make(map[*Job]struct{})
		s.ran = nil
		s.carry = nil
		s.flushing = false
		s.pending = false
		s.mu.Unlock()

		span.SetAttributes(telemetry.AttrJobs.Int(ran), telemetry.AttrPanics.Int(panics))
		span.End()
		s.metrics.Flush(time.Since(start))

		for _, job := range carry {
			s.Enqueue(job)
		}
	}()

	sorted := 0
	for i := 0; ; i++ {
		s.mu.Lock()
		if s.depthOrder && sorted < len(s.queue) {
			tail := s.queue[i:]
			sort.SliceStable(tail, func(a, b int) bool {
				return tail[a].depth < tail[b].depth
			})
			sorted = len(s.queue)
		}
		if i >= len(s.queue) {
			s.mu.Unlock()
			return
		}
		job := s.queue[i]
		s.ran[job] = struct{}{}
		s.mu.Unlock()

		ran++
		if s.run(job) {
			panics++
		}
	}
}

// run executes one job, recovering and reporting a panic.
func (s *Scheduler) run(job *Job) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			err := errors.New("R006").WithDetailf("%s: %v", job, r)
			s.logger.Warn(err.Message, err.LogAttrs()...)
			if s.onError != nil {
				s.onError(err)
			}
		}
		s.metrics.Job(panicked)
	}()

	job.fn()
	return false
}
