package loanview

import (
	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// ProjectLoanView projects the loan from the history of its book.
//
// Query Logic:
//
//	GIVEN: A loan with LoanID
//	WHEN: LoanView query is executed
//	THEN: the loan, corrected as of AsOf, and its overdue view with the fine accrued so far
//	ERROR: ErrLoanNotFound if the loan is not in history
func ProjectLoanView(
	history core.DomainEvents,
	query Query,
	policy core.Policy,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
) (LoanView, error) {

	loanID := query.LoanID.String()

	var bookID core.BookIDString
	for _, event := range history {
		if lent, ok := event.(core.BookLentToBorrower); ok && lent.LoanID == loanID {
			bookID = lent.BookID
		}
	}

	if bookID == "" {
		return LoanView{}, core.ErrLoanNotFound
	}

	s, err := core.ProjectBookState(bookID, history)
	if err != nil {
		return LoanView{}, err
	}

	corrected, _, err := core.Correct(s, query.AsOf, policy)
	if err != nil {
		return LoanView{}, err
	}

	loan, _ := corrected.Loan(loanID)

	return LoanView{
		Loan:           loan,
		Overdue:        policy.OverdueView(loan, query.AsOf),
		SequenceNumber: uint(maxSequenceNumber),
	}, nil
}
