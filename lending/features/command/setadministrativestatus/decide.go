package setadministrativestatus

import (
	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// Decide implements the business logic of an administrative status change.
//
// Business Rules:
//
//	GIVEN: A registered book with BookID
//	WHEN: SetAdministrativeStatus command is received
//	THEN: BookAdministrativeStatusChanged event is generated; clearing the hold also fulfils
//	      queued reservations for the available units
//	ERROR: ErrBookNotFound if the book is not registered
//	ERROR: ErrUnknownAdministrativeHold for a status other than maintenance, lost or empty
//	IDEMPOTENCY: If the status is already set, only pending corrections are generated
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	s, err := core.ProjectBookState(command.BookID.String(), history)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if !s.Registered {
		return core.ErrorDecision(core.ErrBookNotFound)
	}

	corrected, corrections, err := core.Correct(s, command.OccurredAt, policy)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if corrected.Inventory.AdministrativeHold == command.Status {
		return core.IdempotentDecision(corrections)
	}

	changed := core.BuildBookAdministrativeStatusChanged(command.BookID.String(), command.Status, command.OccurredAt)

	simulated := corrected.Clone()
	if err = simulated.Apply(changed); err != nil {
		return core.ErrorDecision(err)
	}

	_, fulfilments, err := core.FulfilWaiting(simulated, command.OccurredAt, policy)
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SimulatedDecision(corrected, corrections, append(core.DomainEvents{changed}, fulfilments...)...)
}

// BuildEventFilter creates the filter for querying all events of the book.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return shell.BookStreamFilter(bookID.String())
}
