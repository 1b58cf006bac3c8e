package loanview

import (
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// LoanView is a loan as of the queried instant together with its overdue view.
type LoanView struct {
	Loan           core.Loan
	Overdue        core.OverdueView
	SequenceNumber uint
}

// GetSequenceNumber returns the highest sequence number included in the view.
func (v LoanView) GetSequenceNumber() uint {
	return v.SequenceNumber
}
