package oteladapters

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
)

// MetricsCollector implements dispatch.MetricsCollector using the OpenTelemetry metrics API.
// It automatically maps the dispatch metrics interface to OpenTelemetry instruments:
//   - RecordDuration -> Histogram (for measuring dispatch durations)
//   - IncrementCounter -> Counter (for counting dispatches and errors)
//   - RecordValue -> Gauge (for current values like in-flight dispatches)
type MetricsCollector struct {
	meter      metric.Meter
	mu         sync.Mutex
	histograms map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Float64Gauge
}

// NewMetricsCollector creates a new OpenTelemetry metrics collector.
// It uses the provided meter to create instruments on-demand as metrics are recorded.
// The meter should be created from your OpenTelemetry MeterProvider.
func NewMetricsCollector(meter metric.Meter) *MetricsCollector {
	return &MetricsCollector{
		meter:      meter,
		histograms: make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
	}
}

// RecordDuration records a duration measurement using an OpenTelemetry histogram.
// Histograms are ideal for measuring dispatch durations as they provide
// percentiles, averages, and distribution information.
func (m *MetricsCollector) RecordDuration(metricName string, duration time.Duration, labels map[string]string) {
	m.RecordDurationContext(context.TODO(), metricName, duration, labels)
}

// RecordDurationContext records a duration measurement with context for trace correlation.
func (m *MetricsCollector) RecordDurationContext(ctx context.Context, metricName string, duration time.Duration, labels map[string]string) {
	histogram := m.getOrCreateHistogram(metricName)
	if histogram == nil {
		return
	}

	// Record duration in seconds (OpenTelemetry convention)
	histogram.Record(ctx, duration.Seconds(), metric.WithAttributes(toAttributes(labels)...))
}

// IncrementCounter increments a counter using an OpenTelemetry counter.
// Counters are monotonically increasing and ideal for counting dispatches,
// errors, and other event occurrences.
func (m *MetricsCollector) IncrementCounter(metricName string, labels map[string]string) {
	m.IncrementCounterContext(context.TODO(), metricName, labels)
}

// IncrementCounterContext increments a counter with context for trace correlation.
func (m *MetricsCollector) IncrementCounterContext(ctx context.Context, metricName string, labels map[string]string) {
	counter := m.getOrCreateCounter(metricName)
	if counter == nil {
		return
	}

	counter.Add(ctx, 1, metric.WithAttributes(toAttributes(labels)...))
}

// RecordValue records a float64 value using an OpenTelemetry gauge.
// Gauges represent current values that can go up or down, such as
// the number of in-flight dispatches.
func (m *MetricsCollector) RecordValue(metricName string, value float64, labels map[string]string) {
	m.RecordValueContext(context.TODO(), metricName, value, labels)
}

// RecordValueContext records a float64 value with context for trace correlation.
func (m *MetricsCollector) RecordValueContext(ctx context.Context, metricName string, value float64, labels map[string]string) {
	gauge := m.getOrCreateGauge(metricName)
	if gauge == nil {
		return
	}

	gauge.Record(ctx, value, metric.WithAttributes(toAttributes(labels)...))
}

func toAttributes(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}

	return attrs
}

// getOrCreateHistogram gets an existing histogram or creates a new one for the given metric name.
func (m *MetricsCollector) getOrCreateHistogram(name string) metric.Float64Histogram {
	m.mu.Lock()
	defer m.mu.Unlock()

	if histogram, exists := m.histograms[name]; exists {
		return histogram
	}

	histogram, err := m.meter.Float64Histogram(
		name,
		metric.WithDescription("dispatch operation duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil
	}

	m.histograms[name] = histogram
	return histogram
}

// getOrCreateCounter gets an existing counter or creates a new one for the given metric name.
func (m *MetricsCollector) getOrCreateCounter(name string) metric.Int64Counter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if counter, exists := m.counters[name]; exists {
		return counter
	}

	counter, err := m.meter.Int64Counter(
		name,
		metric.WithDescription("dispatch operation counter"),
	)
	if err != nil {
		return nil
	}

	m.counters[name] = counter
	return counter
}

// getOrCreateGauge gets an existing gauge or creates a new one for the given metric name.
func (m *MetricsCollector) getOrCreateGauge(name string) metric.Float64Gauge {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gauge, exists := m.gauges[name]; exists {
		return gauge
	}

	gauge, err := m.meter.Float64Gauge(
		name,
		metric.WithDescription("dispatch current value"),
	)
	if err != nil {
		return nil
	}

	m.gauges[name] = gauge
	return gauge
}

// Ensure MetricsCollector implements dispatch.MetricsCollector.
var _ dispatch.MetricsCollector = (*MetricsCollector)(nil)

// Ensure MetricsCollector implements dispatch.ContextualMetricsCollector.
var _ dispatch.ContextualMetricsCollector = (*MetricsCollector)(nil)
