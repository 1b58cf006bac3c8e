package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan statuses. returned and lost are terminal.
const (
	LoanActive   = "active"
	LoanOverdue  = "overdue"
	LoanReturned = "returned"
	LoanLost     = "lost"
)

// Loan is one unit of a book held by a borrower.
// Status is stored state and is only moved to overdue by a correction, see ComputeOverdueView for the live view.
type Loan struct {
	ID            LoanIDString
	BookID        BookIDString
	BorrowerID    BorrowerIDString
	BorrowDate    time.Time
	DueDate       time.Time
	ReturnDate    *time.Time
	Status        string
	FineAmount    decimal.Decimal
	ReservationID ReservationIDString
}

// IsOutstanding reports whether the loan still holds a unit.
func (l Loan) IsOutstanding() bool {
	return l.Status == LoanActive || l.Status == LoanOverdue
}

// OverdueView is the derived overdue state of a loan as of some instant.
type OverdueView struct {
	IsOverdue   bool
	DaysOverdue int
	AccruedFine decimal.Decimal
}

// ComputeOverdueView derives the overdue state of loan as of asOf. It is pure.
// AccruedFine is left zero; Policy.OverdueView fills it in.
func ComputeOverdueView(loan Loan, asOf time.Time) OverdueView {
	view := OverdueView{AccruedFine: decimal.Zero}

	if !loan.IsOutstanding() {
		return view
	}

	days := DaysBetween(loan.DueDate, asOf)
	if days > 0 {
		view.IsOverdue = true
		view.DaysOverdue = days
	}

	return view
}

// ProjectLoans replays the loan lifecycle events of a history spanning any number of books, in borrow order.
// Status is the stored one; overdue is only set where a LoanMarkedOverdue was recorded.
func ProjectLoans(history DomainEvents) []Loan {
	loans := make([]Loan, 0)
	index := make(map[LoanIDString]int)

	for _, event := range history {
		switch e := event.(type) {
		case BookLentToBorrower:
			index[e.LoanID] = len(loans)
			loans = append(loans, Loan{
				ID:            e.LoanID,
				BookID:        e.BookID,
				BorrowerID:    e.BorrowerID,
				BorrowDate:    e.BorrowDate,
				DueDate:       e.DueDate,
				Status:        LoanActive,
				FineAmount:    decimal.Zero,
				ReservationID: e.ReservationID,
			})

		case LoanMarkedOverdue:
			if i, ok := index[e.LoanID]; ok {
				loans[i].Status = LoanOverdue
			}

		case BookReturnedByBorrower:
			if i, ok := index[e.LoanID]; ok {
				returnDate := e.ReturnDate
				loans[i].Status = LoanReturned
				loans[i].ReturnDate = &returnDate
				loans[i].FineAmount = e.FineAmount
			}

		case LoanDeclaredLost:
			if i, ok := index[e.LoanID]; ok {
				loans[i].Status = LoanLost
				loans[i].FineAmount = e.FineAmount
			}
		}
	}

	return loans
}

// IsLoanStatus reports whether status names a loan status.
func IsLoanStatus(status string) bool {
	switch status {
	case LoanActive, LoanOverdue, LoanReturned, LoanLost:
		return true
	default:
		return false
	}
}
