package loanlist

import (
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// LoanInfo is one loan with its overdue view.
type LoanInfo struct {
	Loan    core.Loan
	Overdue core.OverdueView
}

// LoanList holds the matching loans, newest borrow first.
type LoanList struct {
	Loans          []LoanInfo
	SequenceNumber uint
}

// GetSequenceNumber returns the highest sequence number included in the result.
func (r LoanList) GetSequenceNumber() uint {
	return r.SequenceNumber
}
