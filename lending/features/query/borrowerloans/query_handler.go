package borrowerloans

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

// Handle lists the loans of the borrower.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BorrowerLoans, error) {
	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter(query.BorrowerID))
	if err != nil {
		return BorrowerLoans{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return BorrowerLoans{}, err
	}

	return ProjectBorrowerLoans(history, query, h.policy, maxSequenceNumber), nil
}
