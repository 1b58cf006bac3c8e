package core_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

func Test_Fine(t *testing.T) {
	rate := decimal.RequireFromString("0.50")
	due := date(2024, 1, 1)

	testCases := []struct {
		name     string
		returned time.Time
		expected string
	}{
		{name: "ten days late", returned: date(2024, 1, 11), expected: "5"},
		{name: "on the due date", returned: due, expected: "0"},
		{name: "before the due date", returned: date(2023, 12, 20), expected: "0"},
		{name: "late in the evening counts calendar days", returned: time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC), expected: "0.5"},
		{name: "across a year boundary", returned: date(2025, 1, 1), expected: "183"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			fine := core.Fine(due, tc.returned, rate)

			// assert
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(fine), "got %s", fine)
		})
	}
}

func Test_Fine_FormatsAsMoney(t *testing.T) {
	// act
	fine := core.Fine(date(2024, 1, 1), date(2024, 1, 11), decimal.RequireFromString("0.50"))

	// assert
	assert.Equal(t, "5.00", fine.StringFixed(2))
}

func Test_FineWithCap(t *testing.T) {
	// act
	capped := core.FineWithCap(date(2024, 1, 1), date(2024, 12, 31), decimal.RequireFromString("0.50"), 90)
	uncapped := core.FineWithCap(date(2024, 1, 1), date(2024, 1, 31), decimal.RequireFromString("0.50"), 90)

	// assert
	assert.Equal(t, "45.00", capped.StringFixed(2))
	assert.Equal(t, "15.00", uncapped.StringFixed(2))
}

func Test_ComputeOverdueView(t *testing.T) {
	due := date(2024, 1, 1)

	testCases := []struct {
		name         string
		status       string
		asOf         time.Time
		expectedView core.OverdueView
	}{
		{name: "active and late", status: core.LoanActive, asOf: date(2024, 1, 4), expectedView: core.OverdueView{IsOverdue: true, DaysOverdue: 3}},
		{name: "marked overdue stays overdue", status: core.LoanOverdue, asOf: date(2024, 1, 2), expectedView: core.OverdueView{IsOverdue: true, DaysOverdue: 1}},
		{name: "due today", status: core.LoanActive, asOf: due.Add(20 * time.Hour), expectedView: core.OverdueView{}},
		{name: "returned", status: core.LoanReturned, asOf: date(2024, 2, 1), expectedView: core.OverdueView{}},
		{name: "lost", status: core.LoanLost, asOf: date(2024, 2, 1), expectedView: core.OverdueView{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			loan := core.Loan{ID: "l", DueDate: due, Status: tc.status}

			// act
			first := core.ComputeOverdueView(loan, tc.asOf)
			second := core.ComputeOverdueView(loan, tc.asOf)

			// assert
			assert.Equal(t, tc.expectedView.IsOverdue, first.IsOverdue)
			assert.Equal(t, tc.expectedView.DaysOverdue, first.DaysOverdue)
			assert.Equal(t, first, second)
			assert.Equal(t, tc.status, loan.Status, "the loan is not mutated")
		})
	}
}

func Test_Policy_OverdueView_AccruesFine(t *testing.T) {
	// arrange
	policy := core.DefaultPolicy()
	loan := core.Loan{ID: "l", DueDate: date(2024, 1, 1), Status: core.LoanActive}

	// act
	view := policy.OverdueView(loan, date(2024, 1, 11))

	// assert
	assert.True(t, view.IsOverdue)
	assert.Equal(t, 10, view.DaysOverdue)
	assert.Equal(t, "5.00", view.AccruedFine.StringFixed(2))
}

func Test_Policy_DueDate(t *testing.T) {
	// act
	due := core.DefaultPolicy().DueDate(time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC))

	// assert
	assert.Equal(t, date(2024, 1, 31), due)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
