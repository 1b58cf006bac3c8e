package core

import (
	"time"
)

// Correct computes the lazy corrections due at now and returns them together with the corrected state.
//
//   - an active loan whose due date is before today is marked overdue
//   - a queued reservation past its expiry expires
//   - a hold past its HoldUntil lapses, and its unit passes to the next queued reservation or back to the pool
//
// Correct is idempotent: correcting the corrected state again yields no events.
func Correct(state BookState, now time.Time, policy Policy) (BookState, DomainEvents, error) {
	corrected := state.Clone()
	events := make(DomainEvents, 0)

	apply := func(event DomainEvent) error {
		if err := corrected.Apply(event); err != nil {
			return err
		}

		events = append(events, event)

		return nil
	}

	for _, loan := range state.Loans {
		if loan.Status == LoanActive && DaysBetween(loan.DueDate, now) > 0 {
			if err := apply(BuildLoanMarkedOverdue(loan, now)); err != nil {
				return BookState{}, nil, err
			}
		}
	}

	for _, reservation := range state.Reservations {
		if reservation.IsActive() && now.After(reservation.ExpiryDate) {
			if err := apply(BuildReservationExpired(reservation, now)); err != nil {
				return BookState{}, nil, err
			}
		}
	}

	for _, reservation := range state.Reservations {
		if !reservation.HoldActive || reservation.HoldUntil == nil || !now.After(*reservation.HoldUntil) {
			continue
		}

		if err := apply(BuildReservationHoldLapsed(reservation, now)); err != nil {
			return BookState{}, nil, err
		}

		if next, ok := NextFulfilment(corrected, now, policy); ok {
			if err := apply(next); err != nil {
				return BookState{}, nil, err
			}
		}
	}

	return corrected, events, nil
}

// NextFulfilment returns the event that sets an available unit aside for the oldest queued reservation.
// Nothing is due while an administrative hold is set, no unit is available, or nobody is queued.
func NextFulfilment(state BookState, now time.Time, policy Policy) (ReservationFulfilled, bool) {
	if state.Inventory.AdministrativeHold != "" || state.Inventory.AvailableQuantity == 0 {
		return ReservationFulfilled{}, false
	}

	next, ok := state.NextQueuedReservation()
	if !ok {
		return ReservationFulfilled{}, false
	}

	return BuildReservationFulfilled(next, now.Add(policy.HoldPeriod), now), true
}

// FulfilWaiting sets aside available units for queued reservations, oldest first,
// until either the units or the queue run out.
func FulfilWaiting(state BookState, now time.Time, policy Policy) (BookState, DomainEvents, error) {
	fulfilled := state.Clone()
	events := make(DomainEvents, 0)

	for {
		next, ok := NextFulfilment(fulfilled, now, policy)
		if !ok {
			return fulfilled, events, nil
		}

		if err := fulfilled.Apply(next); err != nil {
			return BookState{}, nil, err
		}

		events = append(events, next)
	}
}
