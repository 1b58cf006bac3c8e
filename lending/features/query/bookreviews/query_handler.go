package bookreviews

import (
	"context"

	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// QueryHandler runs Query -> Unmarshal -> Project. External wrappers handle observability.
type QueryHandler struct {
	eventStore shell.QueriesEvents
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(eventStore shell.QueriesEvents) QueryHandler {
	return QueryHandler{eventStore: eventStore}
}

// Handle lists the reviews.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookReviews, error) {
	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, BuildEventFilter(query.BookID))
	if err != nil {
		return BookReviews{}, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return BookReviews{}, err
	}

	return ProjectBookReviews(history, maxSequenceNumber), nil
}
