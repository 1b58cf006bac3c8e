package shell

import (
	"context"
	"time"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// HandlerResult represents the outcome of a command handler execution.
// It captures business outcomes (idempotency, appended events) and retry metadata
// without coupling the handler to specific observability implementations.
type HandlerResult struct {
	// Idempotent indicates that the requested change had already happened.
	// Lazy corrections may still have been appended.
	Idempotent bool

	// Events are the events appended by the final attempt, corrections first.
	Events core.DomainEvents

	// RetryAttempts is the total number of attempts made (1 for no retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the final error: "none", "concurrency_conflict", "context_canceled",
	// "context_deadline_exceeded", or "other".
	LastErrorType string

	// RetriesExhausted is true when all attempts failed with a retryable error.
	RetriesExhausted bool
}

// Outcome is what one attempt of a command produced.
type Outcome struct {
	Idempotent bool
	Events     core.DomainEvents
}

// ExecuteFunc is one attempt of a command: query, decide, append.
type ExecuteFunc func(ctx context.Context) (Outcome, error)

// HandleWithRetry runs execute with RetryWithExponentialBackoff and folds the final attempt into a HandlerResult.
func HandleWithRetry(ctx context.Context, execute ExecuteFunc, options ...RetryOption) (HandlerResult, error) {
	var outcome Outcome

	retryMetrics, err := RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		outcome, execErr = execute(retryCtx)

		return execErr
	}, options...)

	result := HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}

	if err != nil {
		return result, err
	}

	result.Idempotent = outcome.Idempotent
	result.Events = outcome.Events

	return result, nil
}
