package declareloanlost

import (
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// Decide implements the business logic of declaring a loan lost. history is the stream of the loan's book.
//
// Business Rules:
//
//	GIVEN: An outstanding loan with LoanID
//	WHEN: DeclareLoanLost command is received from an administrator
//	THEN: LoanDeclaredLost event is generated with the fine as of today
//	ERROR: ErrLoanNotFound if the loan does not exist
//	ERROR: ErrActorNotPermitted if the actor is not an administrator
//	ERROR: ErrLoanNotOutstanding if the loan was returned
//	IDEMPOTENCY: If the loan is already lost, only pending corrections are generated
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	if !command.Actor.Admin {
		return core.ErrorDecision(core.ErrActorNotPermitted)
	}

	loanID := command.LoanID.String()

	var bookID core.BookIDString
	for _, event := range history {
		if lent, ok := event.(core.BookLentToBorrower); ok && lent.LoanID == loanID {
			bookID = lent.BookID
		}
	}

	if bookID == "" {
		return core.ErrorDecision(core.ErrLoanNotFound)
	}

	s, err := core.ProjectBookState(bookID, history)
	if err != nil {
		return core.ErrorDecision(err)
	}

	corrected, corrections, err := core.Correct(s, command.OccurredAt, policy)
	if err != nil {
		return core.ErrorDecision(err)
	}

	loan, _ := corrected.Loan(loanID)

	switch loan.Status {
	case core.LoanLost:
		return core.IdempotentDecision(corrections)
	case core.LoanReturned:
		return core.ErrorDecision(core.ErrLoanNotOutstanding)
	}

	return core.SimulatedDecision(corrected, corrections,
		core.BuildLoanDeclaredLost(loan, policy.FineFor(loan.DueDate, command.OccurredAt), command.Actor.ID, command.OccurredAt),
	)
}
