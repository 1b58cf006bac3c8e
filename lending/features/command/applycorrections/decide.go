package applycorrections

import (
	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// Decide returns the corrections due for the book, or an idempotent decision when there are none.
// Running it twice for the same instant yields nothing the second time.
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	s, err := core.ProjectBookState(command.BookID.String(), history)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if !s.Registered {
		return core.ErrorDecision(core.ErrBookNotFound)
	}

	_, corrections, err := core.Correct(s, command.OccurredAt, policy)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if len(corrections) == 0 {
		return core.IdempotentDecision(nil)
	}

	return core.SuccessDecision(corrections...)
}

// BuildEventFilter creates the filter for querying all events of the book.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return shell.BookStreamFilter(bookID.String())
}
