package spies

import (
	"context"
	"maps"
	"sync"

	"github.com/iguene/Bibliovirtuelle/eventstore"
)

// SpanRecord is a started span and, once finished, its final status.
type SpanRecord struct {
	Name     string
	Attrs    map[string]string
	Status   string
	Finished bool
}

// TracingCollectorSpy records spans. Safe for concurrent use.
type TracingCollectorSpy struct {
	mu    sync.Mutex
	spans []*SpanRecord
}

func NewTracingCollectorSpy() *TracingCollectorSpy {
	return &TracingCollectorSpy{}
}

type spySpan struct {
	collector *TracingCollectorSpy
	record    *SpanRecord
}

func (s *spySpan) SetStatus(status string) {
	s.collector.mu.Lock()
	defer s.collector.mu.Unlock()

	s.record.Status = status
}

func (s *spySpan) AddAttribute(key, value string) {
	s.collector.mu.Lock()
	defer s.collector.mu.Unlock()

	s.record.Attrs[key] = value
}

func (t *TracingCollectorSpy) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, eventstore.SpanContext) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record := &SpanRecord{Name: name, Attrs: maps.Clone(attrs)}
	if record.Attrs == nil {
		record.Attrs = make(map[string]string)
	}

	t.spans = append(t.spans, record)

	return ctx, &spySpan{collector: t, record: record}
}

func (t *TracingCollectorSpy) FinishSpan(spanCtx eventstore.SpanContext, status string, attrs map[string]string) {
	span, ok := spanCtx.(*spySpan)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	maps.Copy(span.record.Attrs, attrs)
	span.record.Status = status
	span.record.Finished = true
}

// Spans returns copies of all recorded spans named name.
func (t *TracingCollectorSpy) Spans(name string) []SpanRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make([]SpanRecord, 0)
	for _, s := range t.spans {
		if s.Name == name {
			result = append(result, SpanRecord{Name: s.Name, Attrs: maps.Clone(s.Attrs), Status: s.Status, Finished: s.Finished})
		}
	}

	return result
}

var _ eventstore.TracingCollector = (*TracingCollectorSpy)(nil)
