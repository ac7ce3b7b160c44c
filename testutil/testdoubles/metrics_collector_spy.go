package testdoubles

import (
	"sync"
	"time"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
)

// SpyDurationRecord represents a recorded duration metric call.
type SpyDurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// SpyCounterRecord represents a recorded counter metric call.
type SpyCounterRecord struct {
	Metric string
	Labels map[string]string
}

// SpyValueRecord represents a recorded value metric call.
type SpyValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// MetricsCollectorSpy is a dispatch.MetricsCollector implementation that
// captures metrics recording calls for testing.
type MetricsCollectorSpy struct {
	mu        sync.Mutex
	durations []SpyDurationRecord
	counters  []SpyCounterRecord
	values    []SpyValueRecord
}

var _ dispatch.MetricsCollector = (*MetricsCollectorSpy)(nil)

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy instance.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

// RecordDuration implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = append(s.durations, SpyDurationRecord{
		Metric:   metric,
		Duration: duration,
		Labels:   labels,
	})
}

// IncrementCounter implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = append(s.counters, SpyCounterRecord{Metric: metric, Labels: labels})
}

// RecordValue implements the MetricsCollector interface.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = append(s.values, SpyValueRecord{Metric: metric, Value: value, Labels: labels})
}

// ValueRecords returns a copy of all recorded value calls.
func (s *MetricsCollectorSpy) ValueRecords() []SpyValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyValueRecord(nil), s.values...)
}

// DurationRecords returns a copy of all recorded duration calls.
func (s *MetricsCollectorSpy) DurationRecords() []SpyDurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyDurationRecord(nil), s.durations...)
}

// CounterRecords returns a copy of all recorded counter calls.
func (s *MetricsCollectorSpy) CounterRecords() []SpyCounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyCounterRecord(nil), s.counters...)
}
