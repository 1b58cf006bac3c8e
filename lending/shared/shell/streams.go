package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// ErrProjectingStateFailed means the stored history contradicts itself.
var ErrProjectingStateFailed = errors.New("projecting state from history failed")

// BookEventTypes are all event types that make up the stream of one book.
var BookEventTypes = []eventstore.FilterEventTypeString{
	core.BookRegisteredEventType,
	core.BookQuantityAdjustedEventType,
	core.BookAdministrativeStatusChangedEventType,
	core.BookLentToBorrowerEventType,
	core.LoanMarkedOverdueEventType,
	core.BookReturnedByBorrowerEventType,
	core.LoanDeclaredLostEventType,
	core.BookReservedEventType,
	core.ReservationFulfilledEventType,
	core.ReservationExpiredEventType,
	core.ReservationCancelledEventType,
	core.ReservationHoldLapsedEventType,
	core.ReservationHolderNotifiedEventType,
	core.ReservationNotificationFailedEventType,
}

// LoanEventTypes are the event types of the loan lifecycle. Each carries BookID and BorrowerID.
var LoanEventTypes = []eventstore.FilterEventTypeString{
	core.BookLentToBorrowerEventType,
	core.LoanMarkedOverdueEventType,
	core.BookReturnedByBorrowerEventType,
	core.LoanDeclaredLostEventType,
}

// BookStreamFilter selects every event of one book. It is the consistency boundary of most commands.
func BookStreamFilter(bookID core.BookIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(BookEventTypes[0], BookEventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}

// AllBooksFilter selects the events of every book.
func AllBooksFilter() eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(BookEventTypes[0], BookEventTypes[1:]...).
		Finalize()
}

// ReviewsFilter selects the reviews of one book, or of all books when bookID is empty.
func ReviewsFilter(bookID core.BookIDString) eventstore.Filter {
	if bookID == "" {
		return eventstore.BuildEventFilter().
			Matching().
			AnyEventTypeOf(core.BookReviewedEventType).
			Finalize()
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookReviewedEventType).
		AndAnyPredicateOf(eventstore.P("BookID", bookID)).
		Finalize()
}

// BorrowerLoansFilter selects the loan lifecycle events of one borrower across all books.
func BorrowerLoansFilter(borrowerID core.BorrowerIDString) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(LoanEventTypes[0], LoanEventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BorrowerID", borrowerID)).
		Finalize()
}

// BookOfLoan looks up the book a loan belongs to. The answer never changes once the loan exists,
// so the lookup is not part of any consistency boundary.
func BookOfLoan(ctx context.Context, store QueriesEvents, loanID core.LoanIDString) (core.BookIDString, error) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookLentToBorrowerEventType).
		AndAnyPredicateOf(eventstore.P("LoanID", loanID)).
		Finalize()

	history, err := queryDomainEvents(ctx, store, filter)
	if err != nil {
		return "", err
	}

	for _, event := range history {
		if lent, ok := event.(core.BookLentToBorrower); ok && lent.LoanID == loanID {
			return lent.BookID, nil
		}
	}

	return "", core.ErrLoanNotFound
}

// BookOfReservation looks up the book a reservation belongs to.
func BookOfReservation(ctx context.Context, store QueriesEvents, reservationID core.ReservationIDString) (core.BookIDString, error) {
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookReservedEventType).
		AndAnyPredicateOf(eventstore.P("ReservationID", reservationID)).
		Finalize()

	history, err := queryDomainEvents(ctx, store, filter)
	if err != nil {
		return "", err
	}

	for _, event := range history {
		if reserved, ok := event.(core.BookReserved); ok && reserved.ReservationID == reservationID {
			return reserved.BookID, nil
		}
	}

	return "", core.ErrReservationNotFound
}

// LoadBookState queries the stream of one book and projects it.
// The returned sequence number is the version the caller must pass when appending to BookStreamFilter(bookID).
func LoadBookState(ctx context.Context, store QueriesEvents, bookID core.BookIDString) (
	core.BookState,
	eventstore.MaxSequenceNumberUint,
	error,
) {
	storableEvents, maxSequenceNumber, err := store.Query(ctx, BookStreamFilter(bookID))
	if err != nil {
		return core.BookState{}, 0, err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return core.BookState{}, 0, err
	}

	state, err := core.ProjectBookState(bookID, history)
	if err != nil {
		return core.BookState{}, 0, fmt.Errorf("%w: %v", ErrProjectingStateFailed, err) //nolint:errorlint // the domain kind must not leak
	}

	return state, maxSequenceNumber, nil
}

func queryDomainEvents(ctx context.Context, store QueriesEvents, filter eventstore.Filter) (core.DomainEvents, error) {
	storableEvents, _, err := store.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	return DomainEventsFrom(storableEvents)
}
