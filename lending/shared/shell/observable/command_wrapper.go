package observable

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// CommandWrapper instruments a core command handler.
type CommandWrapper[C shell.Command] struct {
	coreHandler shell.CoreCommandHandler[C]
	commandType string
	instruments
}

// NewCommandWrapper wraps coreHandler. The command type is taken from the zero value of C.
func NewCommandWrapper[C shell.Command](coreHandler shell.CoreCommandHandler[C], opts ...Option) *CommandWrapper[C] {
	var zeroCommand C

	return &CommandWrapper[C]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
		instruments: buildInstruments(opts),
	}
}

// Handle delegates to the wrapped handler and records the outcome.
func (w *CommandWrapper[C]) Handle(ctx context.Context, command C) (shell.HandlerResult, error) {
	start := time.Now()
	ctx, span := shell.StartSpan(ctx, w.tracingCollector, shell.SpanNameCommandHandle, map[string]string{
		shell.LogAttrCommandType: w.commandType,
	})
	shell.Log(ctx, w.logger, w.contextualLogger, slog.LevelDebug, shell.LogMsgCommandStarted, shell.LogAttrCommandType, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)
	duration := time.Since(start)

	w.recordRetries(ctx, result)

	status := shell.CommandStatusOf(err)
	if err == nil && result.Idempotent {
		status = shell.StatusIdempotent
	}

	shell.RecordCommandMetrics(ctx, w.metricsCollector, w.commandType, status, duration)
	shell.FinishSpan(w.tracingCollector, span, status, duration, err)

	switch {
	case err == nil:
		shell.Log(ctx, w.logger, w.contextualLogger, slog.LevelInfo, shell.LogMsgCommandCompleted,
			shell.LogAttrCommandType, w.commandType,
			shell.LogAttrBusinessOutcome, status,
			shell.LogAttrEventCount, len(result.Events),
			shell.LogAttrDurationMS, shell.ToMilliseconds(duration),
		)

	case errors.Is(err, core.ErrOverRelease):
		shell.IncrementCounter(ctx, w.metricsCollector, shell.OverReleaseMetric, map[string]string{shell.LogAttrCommandType: w.commandType})
		shell.Log(ctx, w.logger, w.contextualLogger, slog.LevelError, shell.LogMsgOverRelease,
			shell.LogAttrCommandType, w.commandType,
			shell.LogAttrError, err.Error(),
		)

	case status == shell.StatusRejected:
		kind := core.Kind(err)
		shell.IncrementCounter(ctx, w.metricsCollector, shell.CommandHandlerRejectedMetric, map[string]string{
			shell.LogAttrCommandType: w.commandType,
			shell.LogAttrErrorKind:   kind.Error(),
		})
		shell.Log(ctx, w.logger, w.contextualLogger, slog.LevelInfo, shell.LogMsgCommandRejected,
			shell.LogAttrCommandType, w.commandType,
			shell.LogAttrErrorKind, kind.Error(),
			shell.LogAttrError, err.Error(),
		)

	default:
		shell.Log(ctx, w.logger, w.contextualLogger, slog.LevelError, shell.LogMsgCommandFailed,
			shell.LogAttrCommandType, w.commandType,
			shell.LogAttrStatus, status,
			shell.LogAttrRetryAttempts, result.RetryAttempts,
			shell.LogAttrError, err.Error(),
		)
	}

	return result, err
}

func (w *CommandWrapper[C]) recordRetries(ctx context.Context, result shell.HandlerResult) {
	if result.RetryAttempts > 1 {
		shell.IncrementCounter(ctx, w.metricsCollector, shell.CommandHandlerRetriesMetric,
			shell.BuildRetryLabels(w.commandType, result.RetryAttempts-1, result.LastErrorType))
	}
}
