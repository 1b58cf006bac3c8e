package observable

import (
	"context"
	"log/slog"
	"time"

	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// QueryWrapper instruments a core query handler.
type QueryWrapper[Q shell.Query, R shell.QueryResult] struct {
	coreHandler shell.CoreQueryHandler[Q, R]
	queryType   string
	instruments
}

// NewQueryWrapper wraps coreHandler. The query type is taken from the zero value of Q.
func NewQueryWrapper[Q shell.Query, R shell.QueryResult](coreHandler shell.CoreQueryHandler[Q, R], opts ...Option) *QueryWrapper[Q, R] {
	var zeroQuery Q

	return &QueryWrapper[Q, R]{
		coreHandler: coreHandler,
		queryType:   zeroQuery.QueryType(),
		instruments: buildInstruments(opts),
	}
}

// Handle delegates to the wrapped handler and records the outcome.
func (w *QueryWrapper[Q, R]) Handle(ctx context.Context, query Q) (R, error) {
	start := time.Now()
	ctx, span := shell.StartSpan(ctx, w.tracingCollector, shell.SpanNameQueryHandle, map[string]string{
		shell.LogAttrQueryType: w.queryType,
	})

	result, err := w.coreHandler.Handle(ctx, query)
	duration := time.Since(start)

	status := shell.CommandStatusOf(err)
	shell.RecordQueryMetrics(ctx, w.metricsCollector, w.queryType, status, duration)
	shell.FinishSpan(w.tracingCollector, span, status, duration, err)

	if err != nil && status != shell.StatusRejected {
		shell.Log(ctx, w.logger, w.contextualLogger, slog.LevelError, shell.LogMsgQueryFailed,
			shell.LogAttrQueryType, w.queryType,
			shell.LogAttrError, err.Error(),
		)

		return result, err
	}

	shell.Log(ctx, w.logger, w.contextualLogger, slog.LevelDebug, shell.LogMsgQueryCompleted,
		shell.LogAttrQueryType, w.queryType,
		shell.LogAttrStatus, status,
		shell.LogAttrDurationMS, shell.ToMilliseconds(duration),
	)

	return result, err
}
