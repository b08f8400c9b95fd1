// Package metrics records per-candidate outcomes and timings as Prometheus
// collectors, and reads Go runtime memory statistics for the details view.
package metrics
