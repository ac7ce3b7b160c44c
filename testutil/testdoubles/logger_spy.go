package testdoubles

import (
	"context"
	"sync"

	"github.com/dispatchkit/cqrs-dispatch-go/dispatch"
)

// SpyLogRecord represents a recorded log call.
type SpyLogRecord struct {
	Level   string
	Message string
	Args    []any
}

// LoggerSpy is a dispatch.Logger implementation that captures logging calls
// for testing.
type LoggerSpy struct {
	mu      sync.Mutex
	records []SpyLogRecord
}

var _ dispatch.Logger = (*LoggerSpy)(nil)

// NewLoggerSpy creates a new LoggerSpy instance.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

// Debug implements the Logger interface.
func (s *LoggerSpy) Debug(msg string, args ...any) {
	s.record("debug", msg, args)
}

// Info implements the Logger interface.
func (s *LoggerSpy) Info(msg string, args ...any) {
	s.record("info", msg, args)
}

// Warn implements the Logger interface.
func (s *LoggerSpy) Warn(msg string, args ...any) {
	s.record("warn", msg, args)
}

// Error implements the Logger interface.
func (s *LoggerSpy) Error(msg string, args ...any) {
	s.record("error", msg, args)
}

func (s *LoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{Level: level, Message: msg, Args: args})
}

// Records returns a copy of all recorded log calls in order.
func (s *LoggerSpy) Records() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records...)
}

// RecordsWithLevel returns a copy of the recorded log calls with the given level.
func (s *LoggerSpy) RecordsWithLevel(level string) []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filtered []SpyLogRecord
	for _, record := range s.records {
		if record.Level == level {
			filtered = append(filtered, record)
		}
	}

	return filtered
}

// ContextualLoggerSpy is a dispatch.ContextualLogger implementation that
// captures contextual logging calls for testing.
type ContextualLoggerSpy struct {
	mu      sync.Mutex
	records []SpyLogRecord
}

var _ dispatch.ContextualLogger = (*ContextualLoggerSpy)(nil)

// NewContextualLoggerSpy creates a new ContextualLoggerSpy instance.
func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

// DebugContext implements the ContextualLogger interface.
func (s *ContextualLoggerSpy) DebugContext(_ context.Context, msg string, args ...any) {
	s.record("debug", msg, args)
}

// InfoContext implements the ContextualLogger interface.
func (s *ContextualLoggerSpy) InfoContext(_ context.Context, msg string, args ...any) {
	s.record("info", msg, args)
}

// WarnContext implements the ContextualLogger interface.
func (s *ContextualLoggerSpy) WarnContext(_ context.Context, msg string, args ...any) {
	s.record("warn", msg, args)
}

// ErrorContext implements the ContextualLogger interface.
func (s *ContextualLoggerSpy) ErrorContext(_ context.Context, msg string, args ...any) {
	s.record("error", msg, args)
}

func (s *ContextualLoggerSpy) record(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, SpyLogRecord{Level: level, Message: msg, Args: args})
}

// Records returns a copy of all recorded log calls in order.
func (s *ContextualLoggerSpy) Records() []SpyLogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]SpyLogRecord(nil), s.records...)
}
