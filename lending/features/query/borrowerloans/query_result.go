package borrowerloans

import (
	"github.com/shopspring/decimal"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// LoanInfo is one loan with its overdue view.
type LoanInfo struct {
	Loan    core.Loan
	Overdue core.OverdueView
}

// BorrowerLoans lists the loans of a borrower, oldest first.
type BorrowerLoans struct {
	BorrowerID     core.BorrowerIDString
	Loans          []LoanInfo
	Outstanding    int
	AccruedFines   decimal.Decimal
	SequenceNumber uint
}

// GetSequenceNumber returns the highest sequence number included in the result.
func (r BorrowerLoans) GetSequenceNumber() uint {
	return r.SequenceNumber
}
