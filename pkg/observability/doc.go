/*
Package observability exposes Prometheus metrics for merges.

A Metrics value is registered once on a prometheus.Registerer and handed to the
engine with mjmerge.WithMetrics. It counts merges by outcome, robots folded,
conflicts by section, and merge latency.
*/
package observability
