// Package testdoubles provides test doubles (spies) for the observability
// interfaces consumed by the dispatch decorators:
//   - LoggerSpy / ContextualLoggerSpy: capture structured logging calls
//   - MetricsCollectorSpy: captures metrics recording calls
//   - TracingCollectorSpy: captures spans with their finishing status
//
// These spies enable verification of dispatch instrumentation without an
// actual telemetry backend.
package testdoubles
