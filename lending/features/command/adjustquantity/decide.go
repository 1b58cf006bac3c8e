package adjustquantity

import (
	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// Decide implements the business logic of a quantity change.
//
// Business Rules:
//
//	GIVEN: A registered book with BookID
//	WHEN: AdjustQuantity command is received
//	THEN: BookQuantityAdjusted event is generated, followed by ReservationFulfilled for each queued
//	      reservation that a newly available unit can be set aside for
//	ERROR: ErrBookNotFound if the book is not registered
//	ERROR: ErrNegativeQuantity, ErrQuantityBelowHeldUnits
//	IDEMPOTENCY: If the quantity is unchanged, only pending corrections are generated
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

	if corrected.Inventory.Quantity == command.Quantity {
		return core.IdempotentDecision(corrections)
	}

	adjusted := core.BuildBookQuantityAdjusted(command.BookID.String(), command.Quantity, command.OccurredAt)

	simulated := corrected.Clone()
	if err = simulated.Apply(adjusted); err != nil {
		return core.ErrorDecision(err)
	}

	_, fulfilments, err := core.FulfilWaiting(simulated, command.OccurredAt, policy)
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SimulatedDecision(corrected, corrections, append(core.DomainEvents{adjusted}, fulfilments...)...)
}

// BuildEventFilter creates the filter for querying all events of the book.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return shell.BookStreamFilter(bookID.String())
}
