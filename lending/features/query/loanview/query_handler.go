package loanview

import (
	"context"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// QueryHandler runs Query -> Unmarshal -> Project. External wrappers handle observability.
type QueryHandler struct {
	eventStore shell.QueriesEvents
	policy     core.Policy
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithPolicy replaces core.DefaultPolicy.
func WithPolicy(policy core.Policy) Option {
	return func(h *QueryHandler) {
		h.policy = policy
	}
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents, opts ...Option) QueryHandler {
	h := QueryHandler{eventStore: eventStore, policy: core.DefaultPolicy()}
	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle reads the loan from the stream of its book.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LoanView, error) {
	bookID, err := shell.BookOfLoan(ctx, h.eventStore, query.LoanID.String())
	if err != nil {
		return LoanView{}, err
	}

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, shell.BookStreamFilter(bookID))
	if err != nil {
		return LoanView{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return LoanView{}, err
	}

	return ProjectLoanView(history, query, h.policy, maxSequenceNumber)
}
