package returnloan

import (
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// Decide implements the business logic of returning a loan. history is the stream of the loan's book.
//
// Business Rules:
//
//	GIVEN: A loan with LoanID
//	WHEN: ReturnLoan command is received
//	THEN: BookReturnedByBorrower event is generated with the fine as of today,
//	      followed by ReservationFulfilled for the oldest queued reservation if a unit is free for it
//	ERROR: ErrLoanNotFound if the loan does not exist
//	ERROR: ErrActorNotPermitted if the actor is neither the borrower nor an administrator
//	ERROR: ErrLoanNotOutstanding if the loan was declared lost
//	ERROR: ErrReleaseExceedsQuantity if the release would exceed the owned quantity
//	IDEMPOTENCY: If the loan was already returned, only pending corrections are generated
func Decide(history core.DomainEvents, command Command, policy core.Policy) core.DecisionResult {
	loanID := command.LoanID.String()

	bookID, found := bookOf(history, loanID)
	if !found {
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

	if !command.Actor.MayActFor(loan.BorrowerID) {
		return core.ErrorDecision(core.ErrActorNotPermitted)
	}

	switch loan.Status {
	case core.LoanReturned:
		return core.IdempotentDecision(corrections)
	case core.LoanLost:
		return core.ErrorDecision(core.ErrLoanNotOutstanding)
	}

	returned := core.BuildBookReturnedByBorrower(
		loan,
		policy.FineFor(loan.DueDate, command.OccurredAt),
		command.Actor.ID,
		command.OccurredAt,
	)

	simulated := corrected.Clone()
	if err = simulated.Apply(returned); err != nil {
		return core.ErrorDecision(err)
	}

	events := core.DomainEvents{returned}
	if next, ok := core.NextFulfilment(simulated, command.OccurredAt, policy); ok {
		events = append(events, next)
	}

	return core.SimulatedDecision(corrected, corrections, events...)
}

func bookOf(history core.DomainEvents, loanID core.LoanIDString) (core.BookIDString, bool) {
	for _, event := range history {
		if lent, ok := event.(core.BookLentToBorrower); ok && lent.LoanID == loanID {
			return lent.BookID, true
		}
	}

	return "", false
}
