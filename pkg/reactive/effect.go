package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect re-runs a function whenever a value it read during its last run
// changes. The dependency set is rebuilt on every run.
//
// When a scheduler is configured, a change calls the scheduler instead of
// re-running the body inline; the scheduler decides when to call Run.
type Effect struct {
	id uint64

	fn        func()
	scheduler func()
	onStop    func()

	sources   []*dep
	sourcesMu sync.Mutex

	// running guards against an effect re-triggering itself: writes made by
	// the body to values it depends on do not schedule another run.
	running bool

	stopped atomic.Bool
}

// EffectOption configures an Effect.
type EffectOption func(*effectConfig)

type effectConfig struct {
	scheduler func()
	lazy      bool
	onStop    func()
}

// WithScheduler routes change notifications to fn instead of re-running the
// effect synchronously.
func WithScheduler(fn func()) EffectOption {
	return func(c *effectConfig) {
		c.scheduler = fn
	}
}

// Lazy skips the initial run; the caller invokes Run when ready.
func Lazy() EffectOption {
	return func(c *effectConfig) {
		c.lazy = true
	}
}

// OnStop registers fn to run once when the effect is stopped.
func OnStop(fn func()) EffectOption {
	return func(c *effectConfig) {
		c.onStop = fn
	}
}

// NewEffect creates an effect and, unless Lazy is given, runs it once.
func NewEffect(fn func(), opts ...EffectOption) *Effect {
	var cfg effectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Effect{
		id:        nextID(),
		fn:        fn,
		scheduler: cfg.scheduler,
		onStop:    cfg.onStop,
	}
	if !cfg.lazy {
		e.Run()
	}
	return e
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// MarkDirty is called by dependencies when they change.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.stopped.Load() || e.running {
		return
	}
	if e.scheduler != nil {
		e.scheduler()
		return
	}
	e.Run()
}

// Run executes the body, collecting a fresh dependency set.
// Running a stopped effect is a no-op.
func (e *Effect) Run() {
	if e.stopped.Load() || e.running {
		return
	}

	e.clearSources()

	e.running = true
	old := setCurrentListener(e)
	defer func() {
		setCurrentListener(old)
		e.running = false
	}()

	e.fn()
}

// Stop unsubscribes the effect from all dependencies. Later notifications
// and Run calls are ignored.
func (e *Effect) Stop() {
	if e.stopped.Swap(true) {
		return
	}
	e.clearSources()
	if e.onStop != nil {
		e.onStop()
	}
}

// Active reports whether the effect has not been stopped.
func (e *Effect) Active() bool {
	return !e.stopped.Load()
}

// Running reports whether the body is currently executing.
func (e *Effect) Running() bool {
	return e.running
}

// DependencyCount returns the number of values read during the last run.
func (e *Effect) DependencyCount() int {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()
	return len(e.sources)
}

// addSource records a dependency read during the current run.
func (e *Effect) addSource(d *dep) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == d {
			return
		}
	}
	e.sources = append(e.sources, d)
}

func (e *Effect) clearSources() {
	e.sourcesMu.Lock()
	sources := e.sources
	e.sources = nil
	e.sourcesMu.Unlock()

	for _, s := range sources {
		s.unsubscribe(e)
	}
}
