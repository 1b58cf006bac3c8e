package declareloanlost

import (
	"context"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// CommandHandler orchestrates the command processing workflow: Query -> Unmarshal -> Decide -> Append, with retry.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	eventStore   shell.EventStore
	policy       core.Policy
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithPolicy replaces core.DefaultPolicy.
func WithPolicy(policy core.Policy) Option {
	return func(h *CommandHandler) {
		h.policy = policy
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore shell.EventStore, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
		policy:     core.DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle resolves the book of the loan and executes the command on that book's stream with retry on concurrency conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	bookID, err := shell.BookOfLoan(ctx, h.eventStore, command.LoanID.String())
	if err != nil {
		return shell.HandlerResult{}, err
	}

	causationID := uuid.New()

	return shell.HandleWithRetry(ctx, func(retryCtx context.Context) (shell.Outcome, error) {
		return shell.QueryDecideAppend(
			retryCtx,
			h.eventStore,
			shell.BookStreamFilter(bookID),
			func(history core.DomainEvents) core.DecisionResult { return Decide(history, command, h.policy) },
			causationID,
		)
	}, h.retryOptions...)
}
