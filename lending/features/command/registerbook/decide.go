package registerbook

import (
	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// Decide implements the business logic to determine whether a book can be registered.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: RegisterBook command is received
//	THEN: BookRegistered event is generated
//	ERROR: ErrNegativeQuantity if the quantity is negative
//	ERROR: ErrBookAlreadyRegistered if the book was registered before
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if command.Quantity < 0 {
		return core.ErrorDecision(core.ErrNegativeQuantity)
	}

	s, err := core.ProjectBookState(command.BookID.String(), history)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if s.Registered {
		return core.ErrorDecision(core.ErrBookAlreadyRegistered)
	}

	return core.SuccessDecision(
		core.BuildBookRegistered(command.BookID.String(), command.Quantity, command.OccurredAt),
	)
}

// BuildEventFilter creates the filter for querying all events of the book.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return shell.BookStreamFilter(bookID.String())
}
