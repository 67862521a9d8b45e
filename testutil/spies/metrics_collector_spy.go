package spies

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MetricKind distinguishes the three kinds of metric calls.
type MetricKind string

// Metric kinds.
const (
	KindDuration MetricKind = "duration"
	KindCounter  MetricKind = "counter"
	KindValue    MetricKind = "value"
)

// MetricRecord represents one recorded metrics call.
type MetricRecord struct {
	Kind     MetricKind
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
	HasCtx   bool
}

// MetricsCollectorSpy implements store.ContextualMetricsCollector and captures every call.
type MetricsCollectorSpy struct {
	records []MetricRecord
	mu      sync.Mutex
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

// RecordDuration implements store.MetricsCollector.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.add(MetricRecord{Kind: KindDuration, Metric: metric, Duration: duration, Labels: labels})
}

// IncrementCounter implements store.MetricsCollector.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.add(MetricRecord{Kind: KindCounter, Metric: metric, Labels: labels})
}

// RecordValue implements store.MetricsCollector.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.add(MetricRecord{Kind: KindValue, Metric: metric, Value: value, Labels: labels})
}

// RecordDurationContext implements store.ContextualMetricsCollector.
func (s *MetricsCollectorSpy) RecordDurationContext(
	_ context.Context,
	metric string,
	duration time.Duration,
	labels map[string]string,
) {
	s.add(MetricRecord{Kind: KindDuration, Metric: metric, Duration: duration, Labels: labels, HasCtx: true})
}

// IncrementCounterContext implements store.ContextualMetricsCollector.
func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.add(MetricRecord{Kind: KindCounter, Metric: metric, Labels: labels, HasCtx: true})
}

// RecordValueContext implements store.ContextualMetricsCollector.
func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.add(MetricRecord{Kind: KindValue, Metric: metric, Value: value, Labels: labels, HasCtx: true})
}

func (s *MetricsCollectorSpy) add(record MetricRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Labels = maps.Clone(record.Labels)
	s.records = append(s.records, record)
}

// Records returns a copy of all captured records.
func (s *MetricsCollectorSpy) Records() []MetricRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]MetricRecord, len(s.records))
	copy(records, s.records)

	return records
}

// Reset clears all captured records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}

// Count returns how many records of the given kind and metric carry all the given labels.
// Pass label pairs as key, value, key, value, ...
func (s *MetricsCollectorSpy) Count(kind MetricKind, metric string, labelPairs ...string) int {
	count := 0

	for _, record := range s.Records() {
		if record.Kind == kind && record.Metric == metric && hasLabels(record.Labels, labelPairs) {
			count++
		}
	}

	return count
}

// Has reports whether at least one matching record exists, see Count.
func (s *MetricsCollectorSpy) Has(kind MetricKind, metric string, labelPairs ...string) bool {
	return s.Count(kind, metric, labelPairs...) > 0
}

// LastValue returns the value of the last matching value record.
func (s *MetricsCollectorSpy) LastValue(metric string, labelPairs ...string) (float64, bool) {
	records := s.Records()

	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		if record.Kind == KindValue && record.Metric == metric && hasLabels(record.Labels, labelPairs) {
			return record.Value, true
		}
	}

	return 0, false
}

func hasLabels(labels map[string]string, labelPairs []string) bool {
	for i := 0; i+1 < len(labelPairs); i += 2 {
		if value, ok := labels[labelPairs[i]]; !ok || value != labelPairs[i+1] {
			return false
		}
	}

	return true
}
