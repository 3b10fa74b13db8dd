// Package telemetry provides Prometheus metrics and OpenTelemetry tracing
// for the renderer and the job scheduler.
//
// Both types are optional: every method is safe on a nil receiver, so the
// renderer calls them unconditionally and pays nothing when telemetry is
// not configured.
//
//	reg := prometheus.NewRegistry()
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	r := vdom.NewRenderer(host, vdom.WithMetrics(m), vdom.WithTracer(telemetry.NewTracer()))
//
// Metrics collected:
//   - reconcile_host_ops_total: host mutations by operation
//   - reconcile_renders_total: top-level Render calls
//   - reconcile_flushes_total: scheduler flushes
//   - reconcile_flush_duration_seconds: time spent per flush
//   - reconcile_jobs_total: jobs run by outcome (ok, panic)
//   - reconcile_component_instances: live component instances
//   - reconcile_keepalive_cache_total: keep-alive lookups by result (hit, miss, evict)
package telemetry
