// Package health provides HTTP handlers for service health probes.
//
// Handlers:
//   - Liveness: the process is running (no checks)
//   - Readiness: every registered check passes
//
// Usage:
//
//	mux.Handle("GET /health/live", adapt(health.Liveness[*handler.BaseContext]))
//	mux.Handle("GET /health/ready", adapt(health.Readiness[*handler.BaseContext](log, selfTest)))
//
// Checks follow the func(context.Context) error signature.
package health
