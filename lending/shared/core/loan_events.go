package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	BookLentToBorrowerEventType     = "BookLentToBorrower"
	LoanMarkedOverdueEventType      = "LoanMarkedOverdue"
	BookReturnedByBorrowerEventType = "BookReturnedByBorrower"
	LoanDeclaredLostEventType       = "LoanDeclaredLost"
)

// BookLentToBorrower records a new loan. FromHold is set when the unit came from the borrower's hold;
// ReservationID names the reservation the loan satisfied, if any.
type BookLentToBorrower struct {
	LoanID        LoanIDString
	BookID        BookIDString
	BorrowerID    BorrowerIDString
	BorrowDate    time.Time
	DueDate       time.Time
	FromHold      bool
	ReservationID ReservationIDString
	OccurredAt    OccurredAtTS
}

// BuildBookLentToBorrower creates a new BookLentToBorrower event.
func BuildBookLentToBorrower(
	loanID LoanIDString,
	bookID BookIDString,
	borrowerID BorrowerIDString,
	dueDate time.Time,
	fromHold bool,
	reservationID ReservationIDString,
	occurredAt time.Time,
) BookLentToBorrower {

	return BookLentToBorrower{
		LoanID:        loanID,
		BookID:        bookID,
		BorrowerID:    borrowerID,
		BorrowDate:    CivilDate(occurredAt),
		DueDate:       CivilDate(dueDate),
		FromHold:      fromHold,
		ReservationID: reservationID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookLentToBorrower) EventType() string {
	return BookLentToBorrowerEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookLentToBorrower) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e BookLentToBorrower) ForBook() BookIDString {
	return e.BookID
}

// LoanMarkedOverdue is the lazy correction of an active loan past its due date.
type LoanMarkedOverdue struct {
	LoanID     LoanIDString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	OccurredAt OccurredAtTS
}

// BuildLoanMarkedOverdue creates a new LoanMarkedOverdue event.
func BuildLoanMarkedOverdue(loan Loan, occurredAt time.Time) LoanMarkedOverdue {
	return LoanMarkedOverdue{
		LoanID:     loan.ID,
		BookID:     loan.BookID,
		BorrowerID: loan.BorrowerID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanMarkedOverdue) EventType() string {
	return LoanMarkedOverdueEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanMarkedOverdue) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e LoanMarkedOverdue) ForBook() BookIDString {
	return e.BookID
}

// BookReturnedByBorrower terminates a loan and puts its unit back.
type BookReturnedByBorrower struct {
	LoanID     LoanIDString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	ReturnDate time.Time
	FineAmount decimal.Decimal
	ReturnedBy BorrowerIDString
	OccurredAt OccurredAtTS
}

// BuildBookReturnedByBorrower creates a new BookReturnedByBorrower event.
func BuildBookReturnedByBorrower(
	loan Loan,
	fineAmount decimal.Decimal,
	returnedBy BorrowerIDString,
	occurredAt time.Time,
) BookReturnedByBorrower {

	return BookReturnedByBorrower{
		LoanID:     loan.ID,
		BookID:     loan.BookID,
		BorrowerID: loan.BorrowerID,
		ReturnDate: CivilDate(occurredAt),
		FineAmount: fineAmount,
		ReturnedBy: returnedBy,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookReturnedByBorrower) EventType() string {
	return BookReturnedByBorrowerEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturnedByBorrower) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e BookReturnedByBorrower) ForBook() BookIDString {
	return e.BookID
}

// LoanDeclaredLost terminates a loan whose unit will not come back; the unit leaves the collection.
type LoanDeclaredLost struct {
	LoanID     LoanIDString
	BookID     BookIDString
	BorrowerID BorrowerIDString
	FineAmount decimal.Decimal
	DeclaredBy BorrowerIDString
	OccurredAt OccurredAtTS
}

// BuildLoanDeclaredLost creates a new LoanDeclaredLost event.
func BuildLoanDeclaredLost(loan Loan, fineAmount decimal.Decimal, declaredBy BorrowerIDString, occurredAt time.Time) LoanDeclaredLost {
	return LoanDeclaredLost{
		LoanID:     loan.ID,
		BookID:     loan.BookID,
		BorrowerID: loan.BorrowerID,
		FineAmount: fineAmount,
		DeclaredBy: declaredBy,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e LoanDeclaredLost) EventType() string {
	return LoanDeclaredLostEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanDeclaredLost) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e LoanDeclaredLost) ForBook() BookIDString {
	return e.BookID
}
