package loanview_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iguene/Bibliovirtuelle/lending/features/query/loanview"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

func Test_ProjectLoanView_OverdueAsOfIsDerivedNotStored(t *testing.T) {
	// arrange
	bookID, loanID := uuid.New(), uuid.New()
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 1, due.AddDate(0, -2, 0)),
		core.BuildBookLentToBorrower(loanID.String(), bookID.String(), uuid.NewString(), due, false, "", due.AddDate(0, -1, 0)),
	}
	asOf := time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)

	// act
	view, err := loanview.ProjectLoanView(history, loanview.BuildQuery(loanID, asOf), core.DefaultPolicy(), 2)

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.LoanOverdue, view.Loan.Status)
	assert.True(t, view.Overdue.IsOverdue)
	assert.Equal(t, 10, view.Overdue.DaysOverdue)
	assert.Equal(t, "5.00", view.Overdue.AccruedFine.StringFixed(2))
	assert.Equal(t, uint(2), view.GetSequenceNumber())
}

func Test_ProjectLoanView_UnknownLoan(t *testing.T) {
	// act
	_, err := loanview.ProjectLoanView(nil, loanview.BuildQuery(uuid.New(), time.Now()), core.DefaultPolicy(), 0)

	// assert
	assert.ErrorIs(t, err, core.ErrNotFound)
}
