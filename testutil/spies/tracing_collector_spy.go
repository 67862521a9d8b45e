package spies

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/bookstore/store"
)

// SpanRecord represents a recorded span.
type SpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	Finished        bool
}

// spySpan implements store.SpanContext.
type spySpan struct {
	index int
}

func (*spySpan) SetStatus(string) {}

func (*spySpan) AddAttribute(string, string) {}

// TracingCollectorSpy implements store.TracingCollector and captures spans.
type TracingCollectorSpy struct {
	spans []SpanRecord
	mu    sync.Mutex
}

// NewTracingCollectorSpy creates a new TracingCollectorSpy.
func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

// StartSpan implements store.TracingCollector.
func (s *TracingCollectorSpy) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, store.SpanContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.spans = append(s.spans, SpanRecord{Name: name, StartAttributes: maps.Clone(attrs)})

	return ctx, &spySpan{index: len(s.spans) - 1}
}

// FinishSpan implements store.TracingCollector.
func (s *TracingCollectorSpy) FinishSpan(spanCtx store.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*spySpan)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.spans[span.index].Status = status
	s.spans[span.index].EndAttributes = maps.Clone(attrs)
	s.spans[span.index].Finished = true
}

// Spans returns a copy of all captured spans.
func (s *TracingCollectorSpy) Spans() []SpanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	spans := make([]SpanRecord, len(s.spans))
	copy(spans, s.spans)

	return spans
}

// FinishedSpan returns the first finished span with the given name.
func (s *TracingCollectorSpy) FinishedSpan(name string) (SpanRecord, bool) {
	for _, span := range s.Spans() {
		if span.Name == name && span.Finished {
			return span, true
		}
	}

	return SpanRecord{}, false
}
