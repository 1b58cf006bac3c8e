package borrowbook

import (
	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// Decide implements the business logic to determine whether a borrower can borrow a unit of a book.
//
// Business Rules:
//
//	GIVEN: A registered book with BookID and a borrower with BorrowerID
//	WHEN: BorrowBook command is received
//	THEN: BookLentToBorrower event is generated, after any pending corrections of the book
//	ERROR: ErrBookNotFound if the book is not registered
//	ERROR: ErrLoanLimitReached if the borrower already has MaxLoansPerBorrower outstanding loans
//	ERROR: ErrNoUnitAvailable if no unit is available and none is held for the borrower,
//	       or if an administrative hold is set, even when a unit is held for the borrower
//	ERROR: ErrLoanIDTaken if LoanID already names a loan of another book or borrower
//	IDEMPOTENCY: If the loan with LoanID exists for this book and borrower, only pending corrections are generated
//
// A queued reservation of the borrower on the book is satisfied by the loan.
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	bookID := command.BookID.String()
	borrowerID := command.BorrowerID.String()

	s, err := core.ProjectBookState(bookID, history)
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

	if lent, exists := lentWithID(history, command.LoanID.String()); exists {
		if lent.BookID != bookID || lent.BorrowerID != borrowerID {
			return core.ErrorDecision(core.ErrLoanIDTaken)
		}

		return core.IdempotentDecision(corrections)
	}

	if policy.MaxLoansPerBorrower > 0 && outstandingLoansOf(history, borrowerID) >= policy.MaxLoansPerBorrower {
		return core.ErrorDecision(core.ErrLoanLimitReached)
	}

	fromHold := false
	reservationID := ""

	if hold, ok := corrected.ActiveHoldOf(borrowerID); ok {
		fromHold = true
		reservationID = hold.ID
	} else if queued, queuedOK := corrected.ActiveReservationOf(borrowerID); queuedOK {
		reservationID = queued.ID
	}

	return core.SimulatedDecision(corrected, corrections,
		core.BuildBookLentToBorrower(
			command.LoanID.String(),
			bookID,
			borrowerID,
			policy.DueDate(command.OccurredAt),
			fromHold,
			reservationID,
			command.OccurredAt,
		),
	)
}

func lentWithID(history core.DomainEvents, loanID core.LoanIDString) (core.BookLentToBorrower, bool) {
	for _, event := range history {
		if lent, ok := event.(core.BookLentToBorrower); ok && lent.LoanID == loanID {
			return lent, true
		}
	}

	return core.BookLentToBorrower{}, false
}

// outstandingLoansOf counts the borrower's loans on all books that are neither returned nor lost.
func outstandingLoansOf(history core.DomainEvents, borrowerID core.BorrowerIDString) int {
	outstanding := make(map[core.LoanIDString]struct{})

	for _, event := range history {
		switch e := event.(type) {
		case core.BookLentToBorrower:
			if e.BorrowerID == borrowerID {
				outstanding[e.LoanID] = struct{}{}
			}

		case core.BookReturnedByBorrower:
			delete(outstanding, e.LoanID)

		case core.LoanDeclaredLost:
			delete(outstanding, e.LoanID)
		}
	}

	return len(outstanding)
}

// BuildEventFilter creates the filter for querying all events of the book
// together with the loan events of the borrower on any book and the loan already using loanID, if any.
func BuildEventFilter(bookID, borrowerID, loanID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(shell.BookEventTypes[0], shell.BookEventTypes[1:]...).
		AndAnyPredicateOf(eventstore.P("BookID", bookID.String())).
		OrMatching().
		AnyEventTypeOf(
			core.BookLentToBorrowerEventType,
			core.BookReturnedByBorrowerEventType,
			core.LoanDeclaredLostEventType,
		).
		AndAnyPredicateOf(eventstore.P("BorrowerID", borrowerID.String())).
		OrMatching().
		AnyEventTypeOf(core.BookLentToBorrowerEventType).
		AndAnyPredicateOf(eventstore.P("LoanID", loanID.String())).
		Finalize()
}
