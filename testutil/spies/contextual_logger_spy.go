package spies

import (
	"context"
	"sync"
)

// LogRecord represents a recorded log call.
type LogRecord struct {
	Level   string
	Message string
	Args    []any
}

// Attr returns the value logged for key, if any.
func (r LogRecord) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if k, ok := r.Args[i].(string); ok && k == key {
			return r.Args[i+1], true
		}
	}

	return nil, false
}

// ContextualLoggerSpy implements both store.Logger and store.ContextualLogger and captures every call.
type ContextualLoggerSpy struct {
	records []LogRecord
	mu      sync.Mutex
}

// NewContextualLoggerSpy creates a new ContextualLoggerSpy.
func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

// DebugContext implements store.ContextualLogger.
func (s *ContextualLoggerSpy) DebugContext(_ context.Context, msg string, args ...any) {
	s.add("debug", msg, args)
}

// InfoContext implements store.ContextualLogger.
func (s *ContextualLoggerSpy) InfoContext(_ context.Context, msg string, args ...any) {
	s.add("info", msg, args)
}

// WarnContext implements store.ContextualLogger.
func (s *ContextualLoggerSpy) WarnContext(_ context.Context, msg string, args ...any) {
	s.add("warn", msg, args)
}

// ErrorContext implements store.ContextualLogger.
func (s *ContextualLoggerSpy) ErrorContext(_ context.Context, msg string, args ...any) {
	s.add("error", msg, args)
}

// Debug implements store.Logger.
func (s *ContextualLoggerSpy) Debug(msg string, args ...any) { s.add("debug", msg, args) }

// Info implements store.Logger.
func (s *ContextualLoggerSpy) Info(msg string, args ...any) { s.add("info", msg, args) }

// Warn implements store.Logger.
func (s *ContextualLoggerSpy) Warn(msg string, args ...any) { s.add("warn", msg, args) }

// Error implements store.Logger.
func (s *ContextualLoggerSpy) Error(msg string, args ...any) { s.add("error", msg, args) }

func (s *ContextualLoggerSpy) add(level, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, LogRecord{Level: level, Message: msg, Args: args})
}

// Records returns a copy of all captured records.
func (s *ContextualLoggerSpy) Records() []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]LogRecord, len(s.records))
	copy(records, s.records)

	return records
}

// Find returns the first record with the given level and message.
func (s *ContextualLoggerSpy) Find(level, message string) (LogRecord, bool) {
	for _, record := range s.Records() {
		if record.Level == level && record.Message == message {
			return record, true
		}
	}

	return LogRecord{}, false
}

// HasInfoLog checks if there's an info-level record with the specified message.
func (s *ContextualLoggerSpy) HasInfoLog(message string) bool {
	_, ok := s.Find("info", message)
	return ok
}

// HasErrorLog checks if there's an error-level record with the specified message.
func (s *ContextualLoggerSpy) HasErrorLog(message string) bool {
	_, ok := s.Find("error", message)
	return ok
}
