package reservebook

import (
	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// Decide implements the business logic of reserving a book.
//
// Business Rules:
//
//	GIVEN: A registered book with BookID and a borrower with BorrowerID
//	WHEN: ReserveBook command is received
//	THEN: BookReserved event is generated, expiring ReservationTTL from now
//	ERROR: ErrBookNotFound if the book is not registered
//	ERROR: ErrDuplicateReservation if the borrower already has a queued reservation on the book
//	ERROR: ErrReservationIDTaken if ReservationID already names a reservation of another book or borrower
//	IDEMPOTENCY: If the reservation with ReservationID exists for this book and borrower, only pending corrections are generated
//
// Expired reservations are corrected before the duplicate check, so they never block a new one.
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

	if reserved, exists := reservedWithID(history, command.ReservationID.String()); exists {
		if reserved.BookID != command.BookID.String() || reserved.BorrowerID != command.BorrowerID.String() {
			return core.ErrorDecision(core.ErrReservationIDTaken)
		}

		return core.IdempotentDecision(corrections)
	}

	if _, queued := corrected.ActiveReservationOf(command.BorrowerID.String()); queued {
		return core.ErrorDecision(core.ErrDuplicateReservation)
	}

	return core.SimulatedDecision(corrected, corrections,
		core.BuildBookReserved(
			command.ReservationID.String(),
			command.BookID.String(),
			command.BorrowerID.String(),
			command.OccurredAt.Add(policy.ReservationTTL),
			command.OccurredAt,
		),
	)
}

func reservedWithID(history core.DomainEvents, reservationID core.ReservationIDString) (core.BookReserved, bool) {
	for _, event := range history {
		if reserved, ok := event.(core.BookReserved); ok && reserved.ReservationID == reservationID {
			return reserved, true
		}
	}

	return core.BookReserved{}, false
}

// BuildEventFilter creates the filter for querying all events of the book
// together with the reservation already using reservationID, if any.
func BuildEventFilter(bookID, reservationID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(shell.BookEventTypes[0], shell.BookEventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", bookID.String())).
		OrMatching().
		AnyEventTypeOf(core.BookReservedEventType).
		AndAnyPredicateOf(eventstore.P("ReservationID", reservationID.String())).
		Finalize()
}
