package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultLoanPeriod          = 30 * 24 * time.Hour
	defaultReservationTTL      = 7 * 24 * time.Hour
	defaultHoldPeriod          = 7 * 24 * time.Hour
	defaultMaxLoansPerBorrower = 5
)

// Policy carries the lending rules that are configuration rather than code.
type Policy struct {
	LoanPeriod          time.Duration
	ReservationTTL      time.Duration
	HoldPeriod          time.Duration
	LateFeePerDay       decimal.Decimal
	MaxLateDays         int // 0 means billable days are not capped
	MaxLoansPerBorrower int // 0 means no limit
}

// DefaultPolicy returns 30 day loans, 7 day reservations and holds, 0.50 per late day, 5 loans per borrower.
func DefaultPolicy() Policy {
	return Policy{
		LoanPeriod:          defaultLoanPeriod,
		ReservationTTL:      defaultReservationTTL,
		HoldPeriod:          defaultHoldPeriod,
		LateFeePerDay:       decimal.RequireFromString("0.50"),
		MaxLoansPerBorrower: defaultMaxLoansPerBorrower,
	}
}

// DueDate returns the due date of a loan taken at borrowedAt.
func (p Policy) DueDate(borrowedAt time.Time) time.Time {
	return CivilDate(borrowedAt).Add(p.LoanPeriod)
}

// FineFor returns the fine of a loan due at dueDate and returned (or evaluated) at asOf.
func (p Policy) FineFor(dueDate, asOf time.Time) decimal.Decimal {
	return FineWithCap(dueDate, asOf, p.LateFeePerDay, p.MaxLateDays)
}

// OverdueView is ComputeOverdueView plus the fine accrued so far.
func (p Policy) OverdueView(loan Loan, asOf time.Time) OverdueView {
	view := ComputeOverdueView(loan, asOf)
	if view.IsOverdue {
		view.AccruedFine = p.FineFor(loan.DueDate, asOf)
	}

	return view
}
