package notifyholder

import (
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// DecideClaim decides whether the notification of the reservation's holder is claimed now.
// history is the stream of the reservation's book. The reservation is returned as corrected at OccurredAt.
//
// Business Rules:
//
//	GIVEN: A reservation with ReservationID
//	WHEN: NotifyHolder command is received
//	THEN: ReservationHolderNotified event is generated if the holder has an active hold and was not notified
//	ERROR: ErrReservationNotFound if the reservation does not exist
//	IDEMPOTENCY: Otherwise only pending corrections are generated
func DecideClaim(history core.DomainEvents, command Command, policy core.Policy) (core.DecisionResult, core.Reservation) {
	corrected, corrections, reservation, err := project(history, command, policy)
	if err != nil {
		return core.ErrorDecision(err), core.Reservation{}
	}

	if !reservation.AwaitsNotification() {
		return core.IdempotentDecision(corrections), reservation
	}

	return core.SimulatedDecision(corrected, corrections,
		core.BuildReservationHolderNotified(reservation, command.OccurredAt),
	), reservation
}

// DecideFailure decides whether a claimed notification that could not be delivered is released,
// so that a later run retries it. Nothing is released once the hold itself is gone.
func DecideFailure(history core.DomainEvents, command Command, reason string, policy core.Policy) core.DecisionResult {
	corrected, corrections, reservation, err := project(history, command, policy)
	if err != nil {
		return core.ErrorDecision(err)
	}

	if !reservation.HoldActive || !reservation.Notified {
		return core.IdempotentDecision(corrections)
	}

	return core.SimulatedDecision(corrected, corrections,
		core.BuildReservationNotificationFailed(reservation, reason, command.OccurredAt),
	)
}

func project(history core.DomainEvents, command Command, policy core.Policy) (
	core.BookState,
	core.DomainEvents,
	core.Reservation,
	error,
) {
	reservationID := command.ReservationID.String()

	var bookID core.BookIDString
	for _, event := range history {
		if reserved, ok := event.(core.BookReserved); ok && reserved.ReservationID == reservationID {
			bookID = reserved.BookID
		}
	}

	if bookID == "" {
		return core.BookState{}, nil, core.Reservation{}, core.ErrReservationNotFound
	}

	s, err := core.ProjectBookState(bookID, history)
	if err != nil {
		return core.BookState{}, nil, core.Reservation{}, err
	}

	corrected, corrections, err := core.Correct(s, command.OccurredAt, policy)
	if err != nil {
		return core.BookState{}, nil, core.Reservation{}, err
	}

	reservation, _ := corrected.Reservation(reservationID)

	return corrected, corrections, reservation, nil
}
