package loanlist

import (
	"slices"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// ProjectLoanList implements the query logic.
//
// Query Logic:
//
//	GIVEN: the loan events matching BookID and BorrowerID
//	WHEN: LoanList query is executed
//	THEN: the loans whose status as of AsOf matches Status, newest borrow first
//	INCLUDES: returned and lost loans with their final fine
func ProjectLoanList(
	history core.DomainEvents,
	query Query,
	policy core.Policy,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
) LoanList {

	result := LoanList{
		Loans:          make([]LoanInfo, 0),
		SequenceNumber: uint(maxSequenceNumber),
	}

	for _, loan := range core.ProjectLoans(history) {
		if query.BookID != uuid.Nil && loan.BookID != query.BookID.String() {
			continue
		}

		if query.BorrowerID != uuid.Nil && loan.BorrowerID != query.BorrowerID.String() {
			continue
		}

		view := policy.OverdueView(loan, query.AsOf)
		if view.IsOverdue && loan.Status == core.LoanActive {
			loan.Status = core.LoanOverdue
		}

		if query.Status != "" && loan.Status != query.Status {
			continue
		}

		result.Loans = append(result.Loans, LoanInfo{Loan: loan, Overdue: view})
	}

	slices.Reverse(result.Loans)

	return result
}

// BuildEventFilter creates the filter for the loan events of the book and borrower, both optional.
func BuildEventFilter(bookID uuid.UUID, borrowerID uuid.UUID) eventstore.Filter {
	predicates := make([]eventstore.FilterPredicate, 0, 2)
	if bookID != uuid.Nil {
		predicates = append(predicates, eventstore.P("BookID", bookID.String()))
	}

	if borrowerID != uuid.Nil {
		predicates = append(predicates, eventstore.P("BorrowerID", borrowerID.String()))
	}

	types := shell.LoanEventTypes
	if len(predicates) == 0 {
		return eventstore.BuildEventFilter().
			Matching().
			AnyEventTypeOf(types[0], types[1:]...).
			Finalize()
	}

	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(types[0], types[1:]...).
		AndAllPredicatesOf(predicates[0], predicates[1:]...).
		Finalize()
}
