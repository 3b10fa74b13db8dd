package vdom

import (
	"context"
	"log/slog"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/scheduler"
	"github.com/vango-dev/reconcile/pkg/telemetry"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLoop sets the microtask queue the scheduler flushes on. The default is
// a scheduler.Loop the caller drains through Loop().
func WithLoop(loop scheduler.Microtasks) Option {
	return func(r *Renderer) {
		r.loop = loop
	}
}

// WithLogger sets the logger diagnostics are written to.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithDiagnostics registers fn to receive every diagnostic the renderer
// reports, in addition to the log.
func WithDiagnostics(fn func(error)) Option {
	return func(r *Renderer) {
		r.onDiagnostic = fn
	}
}

// WithMetrics enables Prometheus metrics for host operations, renders and
// scheduler flushes.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Renderer) {
		r.metrics = m
	}
}

// WithTracer enables spans around renders and scheduler flushes.
func WithTracer(t *telemetry.Tracer) Option {
	return func(r *Renderer) {
		r.tracer = t
	}
}

// WithDepthOrder makes scheduler flushes run parent components before their
// descendants instead of in insertion order.
func WithDepthOrder() Option {
	return func(r *Renderer) {
		r.depthOrder = true
	}
}

// WithCacheMax sets the entry limit for KeepAlive nodes that set neither
// "max" nor "policy". Zero keeps them unbounded.
func WithCacheMax(n int) Option {
	return func(r *Renderer) {
		r.cacheMax = n
	}
}

// Renderer patches VNode trees into containers owned by a Host.
type Renderer struct {
	host  Host
	loop  scheduler.Microtasks
	sched *scheduler.Scheduler

	logger       *slog.Logger
	onDiagnostic func(error)
	metrics      *telemetry.Metrics
	tracer       *telemetry.Tracer
	depthOrder   bool
	cacheMax     int

	// roots maps each container to the tree last rendered into it.
	roots map[Handle]*VNode
}

// NewRenderer creates a renderer over host.
func NewRenderer(host Host, opts ...Option) *Renderer {
	r := &Renderer{
		host:   host,
		logger: slog.Default(),
		roots:  make(map[Handle]*VNode),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.loop == nil {
		r.loop = scheduler.NewLoop()
	}

	schedOpts := []scheduler.Option{
		scheduler.WithLogger(r.logger),
		scheduler.WithMetrics(r.metrics),
		scheduler.WithTracer(r.tracer),
		scheduler.WithErrorHandler(r.onDiagnostic),
	}
	if r.depthOrder {
		schedOpts = append(schedOpts, scheduler.WithDepthOrder())
	}
	r.sched = scheduler.New(r.loop, schedOpts...)
	return r
}

// Loop returns the microtask queue component updates are flushed on.
func (r *Renderer) Loop() scheduler.Microtasks {
	return r.loop
}

// Host returns the platform adapter.
func (r *Renderer) Host() Host {
	return r.host
}

// Render patches v into container against whatever was rendered there
// before. A nil v unmounts the previous tree.
func (r *Renderer) Render(v *VNode, container Handle) {
	kind := "nil"
	if v != nil {
		kind = v.Kind.String()
	}
	_, span := r.tracer.Start(context.Background(), "vdom.render", telemetry.AttrRootKind.String(kind))
	defer span.End()
	r.metrics.Render()

	prev := r.roots[container]
	switch {
	case v == nil:
		if prev != nil {
			r.unmount(prev, true)
		}
		delete(r.roots, container)
	default:
		r.patch(prev, v, container, nil, nil)
		r.roots[container] = v
	}
}

// Unmount tears down the tree rendered into container.
func (r *Renderer) Unmount(container Handle) {
	r.Render(nil, container)
}

// report logs a diagnostic and hands it to the diagnostics callback.
func (r *Renderer) report(err *errors.Error) {
	r.logger.Warn(err.Message, err.LogAttrs()...)
	if r.onDiagnostic != nil {
		r.onDiagnostic(err)
	}
}
