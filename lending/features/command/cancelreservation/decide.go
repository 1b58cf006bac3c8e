package cancelreservation

import (
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// Decide implements the business logic of cancelling a reservation. history is the stream of the reservation's book.
//
// Business Rules:
//
//	GIVEN: A reservation with ReservationID
//	WHEN: CancelReservation command is received
//	THEN: ReservationCancelled event is generated
//	ERROR: ErrReservationNotFound if the reservation does not exist
//	ERROR: ErrActorNotPermitted if the actor is neither the holder nor an administrator
//	ERROR: ErrReservationNotActive if the reservation is fulfilled or expired
//	IDEMPOTENCY: If the reservation was already cancelled, only pending corrections are generated
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	reservationID := command.ReservationID.String()

	var bookID core.BookIDString
	for _, event := range history {
		if reserved, ok := event.(core.BookReserved); ok && reserved.ReservationID == reservationID {
			bookID = reserved.BookID
		}
	}

	if bookID == "" {
		return core.ErrorDecision(core.ErrReservationNotFound)
	}

	s, err := core.ProjectBookState(bookID, history)
	if err != nil {
		return core.ErrorDecision(err)
	}

	corrected, corrections, err := core.Correct(s, command.OccurredAt, policy)
	if err != nil {
		return core.ErrorDecision(err)
	}

	reservation, _ := corrected.Reservation(reservationID)

	if !command.Actor.MayActFor(reservation.BorrowerID) {
		return core.ErrorDecision(core.ErrActorNotPermitted)
	}

	if reservation.Status == core.ReservationStatusCancelled {
		return core.IdempotentDecision(corrections)
	}

	return core.SimulatedDecision(corrected, corrections,
		core.BuildReservationCancelled(reservation, command.Actor.ID, command.OccurredAt),
	)
}
