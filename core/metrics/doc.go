// Package metrics defines the events recorded while loading offerings and
// generating schedules, and the sinks that receive them. Sinks such as
// PromSink and InfluxSink live in infra/metrics and register themselves with
// the factory here; several configured sinks are combined in a MultiSink.
package metrics
