package postgresengine

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/iguene/Bibliovirtuelle/eventstore"
)

const (
	metricQueryDuration       = "eventstore_query_duration_seconds"
	metricAppendDuration      = "eventstore_append_duration_seconds"
	metricEventsQueried       = "eventstore_events_queried_total"
	metricEventsAppended      = "eventstore_events_appended_total"
	metricConcurrencyConflict = "eventstore_concurrency_conflicts_total"
	metricDatabaseErrors      = "eventstore_database_errors_total"

	spanNameQuery  = "eventstore.query"
	spanNameAppend = "eventstore.append"

	labelOperation = "operation"
	labelStatus    = "status"
	labelErrorType = "error_type"

	spanAttrTable      = "db.table"
	spanAttrFilter     = "eventstore.filter"
	spanAttrEventCount = "eventstore.event_count"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess = "success"
	statusError   = "error"
)

func (es EventStore) logDebug(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.DebugContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Debug(msg, args...)
	}
}

func (es EventStore) logInfo(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Info(msg, args...)
	}
}

func (es EventStore) logWarn(ctx context.Context, msg string, args ...any) {
	if es.contextualLogger != nil {
		es.contextualLogger.WarnContext(ctx, msg, args...)
		return
	}

	if es.logger != nil {
		es.logger.Warn(msg, args...)
	}
}

func (es EventStore) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if es.contextualLogger != nil {
		es.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if es.logger != nil {
		es.logger.Error(msg, allArgs...)
	}
}

func (es EventStore) recordDuration(ctx context.Context, metric string, d time.Duration, operation, status string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: operation, labelStatus: status}

	if cmc, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		cmc.RecordDurationContext(ctx, metric, d, labels)
		return
	}

	es.metricsCollector.RecordDuration(metric, d, labels)
}

func (es EventStore) recordValue(ctx context.Context, metric string, value float64, operation string) {
	if es.metricsCollector == nil {
		return
	}

	labels := map[string]string{labelOperation: operation}

	if cmc, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		cmc.RecordValueContext(ctx, metric, value, labels)
		return
	}

	es.metricsCollector.RecordValue(metric, value, labels)
}

func (es EventStore) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if es.metricsCollector == nil {
		return
	}

	if cmc, ok := es.metricsCollector.(eventstore.ContextualMetricsCollector); ok {
		cmc.IncrementCounterContext(ctx, metric, labels)
		return
	}

	es.metricsCollector.IncrementCounter(metric, labels)
}

func (es EventStore) recordDatabaseError(ctx context.Context, operation, errorType string) {
	es.incrementCounter(ctx, metricDatabaseErrors, map[string]string{labelOperation: operation, labelErrorType: errorType})
}

func (es EventStore) startSpan(ctx context.Context, name string, filter eventstore.Filter) (context.Context, eventstore.SpanContext) {
	if es.tracingCollector == nil {
		return ctx, nil
	}

	return es.tracingCollector.StartSpan(ctx, name, map[string]string{
		spanAttrTable:  es.eventTableName,
		spanAttrFilter: filter.String(),
	})
}

func (es EventStore) finishSpan(span eventstore.SpanContext, status string, eventCount int) {
	if es.tracingCollector == nil || span == nil {
		return
	}

	es.tracingCollector.FinishSpan(span, status, map[string]string{spanAttrEventCount: strconv.Itoa(eventCount)})
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
