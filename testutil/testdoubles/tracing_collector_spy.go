package testdoubles

import (
	"context"
	"sync"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
)

// SpySpan is the SpanContext implementation recorded by TracingCollectorSpy.
type SpySpan struct {
	Name       string
	StartAttrs map[string]string
	Status     string
	Attrs      map[string]string
	Finished   bool

	mu sync.Mutex
}

var _ dispatch.SpanContext = (*SpySpan)(nil)

// SetStatus implements the SpanContext interface.
func (s *SpySpan) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Status = status
}

// AddAttribute implements the SpanContext interface.
func (s *SpySpan) AddAttribute(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Attrs == nil {
		s.Attrs = make(map[string]string)
	}

	s.Attrs[key] = value
}

// TracingCollectorSpy is a dispatch.TracingCollector implementation that
// captures spans for testing.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*SpySpan
}

var _ dispatch.TracingCollector = (*TracingCollectorSpy)(nil)

// NewTracingCollectorSpy creates a new TracingCollectorSpy instance.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

// StartSpan implements the TracingCollector interface.
func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, dispatch.SpanContext) {
	span := &SpySpan{Name: name, StartAttrs: attrs}

	s.mu.Lock()
	s.spans = append(s.spans, span)
	s.mu.Unlock()

	return ctx, span
}

// FinishSpan implements the TracingCollector interface.
func (s *TracingCollectorSpy) FinishSpan(spanCtx dispatch.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*SpySpan)
	if !ok {
		return
	}

	span.mu.Lock()
	defer span.mu.Unlock()

	span.Status = status
	span.Finished = true

	if span.Attrs == nil {
		span.Attrs = make(map[string]string, len(attrs))
	}

	for key, value := range attrs {
		span.Attrs[key] = value
	}
}

// Spans returns a copy of all started spans in order.
func (s *TracingCollectorSpy) Spans() []*SpySpan {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*SpySpan(nil), s.spans...)
}
