package loanlist_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iguene/Bibliovirtuelle/lending/features/query/loanlist"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

func Test_ProjectLoanList(t *testing.T) {
	bookA, bookB := uuid.New(), uuid.New()
	alice, bob := uuid.New(), uuid.New()
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	returned := core.Loan{ID: "l-1", BookID: bookA.String(), BorrowerID: alice.String(), DueDate: due}

	history := core.DomainEvents{
		core.BuildBookLentToBorrower("l-1", bookA.String(), alice.String(), due, false, "", due.AddDate(0, 0, -30)),
		core.BuildBookLentToBorrower("l-2", bookA.String(), bob.String(), due, false, "", due.AddDate(0, 0, -29)),
		core.BuildBookLentToBorrower("l-3", bookB.String(), alice.String(), due.AddDate(0, 0, 30), false, "", due.AddDate(0, 0, -1)),
		core.BuildBookReturnedByBorrower(returned, decimal.Zero, alice.String(), due.AddDate(0, 0, -2)),
	}
	asOf := due.AddDate(0, 0, 4)

	testCases := []struct {
		name     string
		query    loanlist.Query
		expected []string
	}{
		{name: "everything newest first", query: loanlist.BuildQuery(uuid.Nil, uuid.Nil, "", asOf), expected: []string{"l-3", "l-2", "l-1"}},
		{name: "by book", query: loanlist.BuildQuery(bookA, uuid.Nil, "", asOf), expected: []string{"l-2", "l-1"}},
		{name: "by borrower", query: loanlist.BuildQuery(uuid.Nil, alice, "", asOf), expected: []string{"l-3", "l-1"}},
		{name: "by book and borrower", query: loanlist.BuildQuery(bookA, alice, "", asOf), expected: []string{"l-1"}},
		{name: "overdue as of the view", query: loanlist.BuildQuery(uuid.Nil, uuid.Nil, core.LoanOverdue, asOf), expected: []string{"l-2"}},
		{name: "active", query: loanlist.BuildQuery(uuid.Nil, uuid.Nil, core.LoanActive, asOf), expected: []string{"l-3"}},
		{name: "returned", query: loanlist.BuildQuery(uuid.Nil, uuid.Nil, core.LoanReturned, asOf), expected: []string{"l-1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := loanlist.ProjectLoanList(history, tc.query, core.DefaultPolicy(), 4)

			// assert
			ids := make([]string, 0, len(result.Loans))
			for _, info := range result.Loans {
				ids = append(ids, info.Loan.ID)
			}

			assert.Equal(t, tc.expected, ids)
		})
	}
}

func Test_ProjectLoanList_CarriesOverdueView(t *testing.T) {
	// arrange
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	history := core.DomainEvents{
		core.BuildBookLentToBorrower("l-1", uuid.NewString(), uuid.NewString(), due, false, "", due.AddDate(0, 0, -30)),
	}

	// act
	result := loanlist.ProjectLoanList(history, loanlist.BuildQuery(uuid.Nil, uuid.Nil, "", due.AddDate(0, 0, 10)), core.DefaultPolicy(), 1)

	// assert
	require.Len(t, result.Loans, 1)
	assert.True(t, result.Loans[0].Overdue.IsOverdue)
	assert.Equal(t, 10, result.Loans[0].Overdue.DaysOverdue)
	assert.Equal(t, "5.00", result.Loans[0].Overdue.AccruedFine.StringFixed(2))
}

func Test_Query_Validate_RejectsUnknownStatus(t *testing.T) {
	// act
	err := loanlist.BuildQuery(uuid.Nil, uuid.Nil, "misplaced", time.Now()).Validate()

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
