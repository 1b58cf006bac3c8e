package borrowerloans

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// ProjectBorrowerLoans implements the query logic.
//
// Query Logic:
//
//	GIVEN: A borrower with BorrowerID
//	WHEN: BorrowerLoans query is executed
//	THEN: all loans of the borrower in borrow order, an active loan past its due date shown as overdue
//	INCLUDES: returned and lost loans with their final fine
func ProjectBorrowerLoans(
	history core.DomainEvents,
	query Query,
	policy core.Policy,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
) BorrowerLoans {

	borrowerID := query.BorrowerID.String()

	result := BorrowerLoans{
		BorrowerID:     borrowerID,
		Loans:          make([]LoanInfo, 0),
		AccruedFines:   decimal.Zero,
		SequenceNumber: uint(maxSequenceNumber),
	}

	for _, loan := range core.ProjectLoans(history) {
		if loan.BorrowerID != borrowerID {
			continue
		}

		view := policy.OverdueView(loan, query.AsOf)
		if view.IsOverdue && loan.Status == core.LoanActive {
			loan.Status = core.LoanOverdue
		}

		if loan.IsOutstanding() {
			result.Outstanding++
			result.AccruedFines = result.AccruedFines.Add(view.AccruedFine)
		}

		result.Loans = append(result.Loans, LoanInfo{Loan: loan, Overdue: view})
	}

	return result
}

// BuildEventFilter creates the filter for querying the loan events of the borrower.
func BuildEventFilter(borrowerID uuid.UUID) eventstore.Filter {
	return shell.BorrowerLoansFilter(borrowerID.String())
}
