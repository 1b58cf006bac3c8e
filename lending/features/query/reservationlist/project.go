package reservationlist

import (
	"slices"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// ProjectReservationList implements the query logic.
//
// Query Logic:
//
//	GIVEN: the events of the queried books
//	WHEN: ReservationList query is executed
//	THEN: every reservation of the corrected state at AsOf that matches BorrowerID and Status, newest first
func ProjectReservationList(
	history core.DomainEvents,
	query Query,
	policy core.Policy,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
) (ReservationList, error) {

	states, err := core.ProjectBookStates(history)
	if err != nil {
		return ReservationList{}, err
	}

	result := ReservationList{
		Reservations:   make([]core.Reservation, 0),
		SequenceNumber: uint(maxSequenceNumber),
	}

	for _, s := range states {
		if !s.Registered {
			continue
		}

		if query.BookID != uuid.Nil && s.BookID != query.BookID.String() {
			continue
		}

		corrected, _, err := core.Correct(s, query.AsOf, policy)
		if err != nil {
			return ReservationList{}, err
		}

		for _, reservation := range corrected.Reservations {
			if query.BorrowerID != uuid.Nil && reservation.BorrowerID != query.BorrowerID.String() {
				continue
			}

			if query.Status != "" && reservation.Status != query.Status {
				continue
			}

			result.Reservations = append(result.Reservations, reservation)
		}
	}

	slices.SortStableFunc(result.Reservations, func(a, b core.Reservation) int {
		return b.ReservationDate.Compare(a.ReservationDate)
	})

	return result, nil
}

// BuildEventFilter creates the filter for the stream of the book, or of all books when bookID is zero.
// Corrections depend on the whole stream, so the borrower cannot narrow it.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	if bookID == uuid.Nil {
		return shell.AllBooksFilter()
	}

	return shell.BookStreamFilter(bookID.String())
}
