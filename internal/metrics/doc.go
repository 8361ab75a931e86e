// Package metrics exposes scan telemetry as Prometheus collectors and reads
// runtime memory statistics.
package metrics
