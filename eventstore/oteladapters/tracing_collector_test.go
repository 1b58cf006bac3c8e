package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/eventstore/oteladapters"
)

func Test_TracingCollector_MapsStatuses(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{status: eventstore.SpanStatusOK, expectedCode: codes.Ok},
		{status: eventstore.SpanStatusError, expectedCode: codes.Error},
		{status: eventstore.SpanStatusConflict, expectedCode: codes.Error},
		{status: "timeout", expectedCode: codes.Error},
		{status: "something-else", expectedCode: codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// arrange
			exporter := tracetest.NewInMemoryExporter()
			provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
			collector := oteladapters.NewTracingCollector(provider.Tracer("test"))

			// act
			_, span := collector.StartSpan(context.Background(), "eventstore.append", map[string]string{"event_type": "BookLentToBorrower"})
			span.AddAttribute("book_id", "b-1")
			collector.FinishSpan(span, tc.status, map[string]string{"rows": "1"})

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, "eventstore.append", spans[0].Name)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
			assert.Contains(t, spans[0].Attributes, attribute.String("event_type", "BookLentToBorrower"))
			assert.Contains(t, spans[0].Attributes, attribute.String("book_id", "b-1"))
			assert.Contains(t, spans[0].Attributes, attribute.String("rows", "1"))
		})
	}
}

func Test_TracingCollector_PropagatesParentSpan(t *testing.T) {
	// arrange
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	collector := oteladapters.NewTracingCollector(provider.Tracer("test"))

	// act
	ctx, parent := collector.StartSpan(context.Background(), "lending.borrow", nil)
	_, child := collector.StartSpan(ctx, "eventstore.query", nil)
	collector.FinishSpan(child, eventstore.SpanStatusOK, nil)
	collector.FinishSpan(parent, eventstore.SpanStatusOK, nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}
