package spies

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/iguene/Bibliovirtuelle/eventstore"
)

// DurationRecord is one recorded RecordDuration call.
type DurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// CounterRecord is one recorded IncrementCounter call.
type CounterRecord struct {
	Metric string
	Labels map[string]string
}

// ValueRecord is one recorded RecordValue call.
type ValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// MetricsCollectorSpy records every call. Safe for concurrent use.
type MetricsCollectorSpy struct {
	mu        sync.Mutex
	durations []DurationRecord
	counters  []CounterRecord
	values    []ValueRecord
}

func NewMetricsCollectorSpy() *MetricsCollectorSpy {
	return &MetricsCollectorSpy{}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durations = append(s.durations, DurationRecord{Metric: metric, Duration: duration, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counters = append(s.counters, CounterRecord{Metric: metric, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = append(s.values, ValueRecord{Metric: metric, Value: value, Labels: maps.Clone(labels)})
}

func (s *MetricsCollectorSpy) RecordDurationContext(_ context.Context, metric string, duration time.Duration, labels map[string]string) {
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.RecordValue(metric, value, labels)
}

// CounterCalls returns the recorded increments of metric.
func (s *MetricsCollectorSpy) CounterCalls(metric string) []CounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]CounterRecord, 0)
	for _, r := range s.counters {
		if r.Metric == metric {
			result = append(result, r)
		}
	}

	return result
}

// DurationCalls returns the recorded durations of metric.
func (s *MetricsCollectorSpy) DurationCalls(metric string) []DurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]DurationRecord, 0)
	for _, r := range s.durations {
		if r.Metric == metric {
			result = append(result, r)
		}
	}

	return result
}

// ValueCalls returns the recorded values of metric.
func (s *MetricsCollectorSpy) ValueCalls(metric string) []ValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]ValueRecord, 0)
	for _, r := range s.values {
		if r.Metric == metric {
			result = append(result, r)
		}
	}

	return result
}

var _ eventstore.ContextualMetricsCollector = (*MetricsCollectorSpy)(nil)
