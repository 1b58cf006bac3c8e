package pendingwork

import (
	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// ProjectPendingWork implements the query logic.
//
// Query Logic:
//
//	GIVEN: the events of all books
//	WHEN: PendingWork query is executed
//	THEN: every book whose corrected state at AsOf differs from its stored state
//	AND: every reservation holding a unit whose holder was not notified, after corrections
func ProjectPendingWork(
	history core.DomainEvents,
	query Query,
	policy core.Policy,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
) (PendingWork, error) {

	states, err := core.ProjectBookStates(history)
	if err != nil {
		return PendingWork{}, err
	}

	result := PendingWork{
		BooksToCorrect:       make([]core.BookIDString, 0),
		ReservationsToNotify: make([]core.ReservationIDString, 0),
		SequenceNumber:       uint(maxSequenceNumber),
	}

	for _, s := range states {
		if !s.Registered {
			continue
		}

		corrected, corrections, err := core.Correct(s, query.AsOf, policy)
		if err != nil {
			return PendingWork{}, err
		}

		if len(corrections) > 0 {
			result.BooksToCorrect = append(result.BooksToCorrect, s.BookID)
		}

		for _, reservation := range corrected.Reservations {
			if reservation.AwaitsNotification() {
				result.ReservationsToNotify = append(result.ReservationsToNotify, reservation.ID)
			}
		}
	}

	return result, nil
}

// BuildEventFilter creates the filter for querying the events of all books.
func BuildEventFilter() eventstore.Filter {
	return shell.AllBooksFilter()
}
