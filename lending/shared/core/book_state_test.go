package core_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const (
	bookA     = "book-a"
	bookB     = "book-b"
	borrowerA = "borrower-a"
	borrowerB = "borrower-b"
	loanA     = "loan-a"
	loanB     = "loan-b"
	reserveA  = "reservation-a"
	reserveB  = "reservation-b"
)

var t0 = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func Test_ProjectBookState_SkipsOtherBooks(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		core.BuildBookRegistered(bookA, 1, t0),
		core.BuildBookRegistered(bookB, 2, t0),
		core.BuildBookLentToBorrower(loanB, bookB, borrowerA, t0.AddDate(0, 0, 30), false, "", t0),
	}

	// act
	state, err := core.ProjectBookState(bookA, history)

	// assert
	require.NoError(t, err)
	assert.True(t, state.Registered)
	assert.Equal(t, 1, state.Inventory.AvailableQuantity)
	assert.Empty(t, state.Loans)
}

func Test_ProjectBookState_BorrowAndReturnRestoresInventory(t *testing.T) {
	// arrange
	history := core.DomainEvents{
		core.BuildBookRegistered(bookA, 1, t0),
		core.BuildBookLentToBorrower(loanA, bookA, borrowerA, t0.AddDate(0, 0, 30), false, "", t0),
	}

	borrowed, err := core.ProjectBookState(bookA, history)
	require.NoError(t, err)
	loan, _ := borrowed.Loan(loanA)

	// act
	history = append(history, core.BuildBookReturnedByBorrower(loan, decimal.Zero, borrowerA, t0.Add(time.Hour)))
	returned, err := core.ProjectBookState(bookA, history)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, borrowed.Inventory.AvailableQuantity)
	assert.Equal(t, core.StatusBorrowed, borrowed.Inventory.Status)
	assert.Equal(t, 1, returned.Inventory.AvailableQuantity)
	assert.Equal(t, core.StatusAvailable, returned.Inventory.Status)

	returnedLoan, ok := returned.Loan(loanA)
	require.True(t, ok)
	assert.Equal(t, core.LoanReturned, returnedLoan.Status)
	require.NotNil(t, returnedLoan.ReturnDate)
}

func Test_BookState_Apply_RejectsLendingWithoutUnit(t *testing.T) {
	// arrange
	state, err := core.ProjectBookState(bookA, core.DomainEvents{
		core.BuildBookRegistered(bookA, 1, t0),
		core.BuildBookLentToBorrower(loanA, bookA, borrowerA, t0.AddDate(0, 0, 30), false, "", t0),
	})
	require.NoError(t, err)

	// act
	err = state.Apply(core.BuildBookLentToBorrower(loanB, bookA, borrowerB, t0.AddDate(0, 0, 30), false, "", t0))

	// assert
	assert.ErrorIs(t, err, core.ErrNotAvailable)
}

func Test_BookState_Apply_ReturnAfterQuantityReductionIsOverRelease(t *testing.T) {
	// arrange
	state, err := core.ProjectBookState(bookA, core.DomainEvents{
		core.BuildBookRegistered(bookA, 1, t0),
		core.BuildBookLentToBorrower(loanA, bookA, borrowerA, t0.AddDate(0, 0, 30), false, "", t0),
		core.BuildBookQuantityAdjusted(bookA, 0, t0.Add(time.Hour)),
	})
	require.NoError(t, err)
	loan, _ := state.Loan(loanA)
	before := state.Clone()

	// act
	candidate := state.Clone()
	err = candidate.Apply(core.BuildBookReturnedByBorrower(loan, decimal.Zero, borrowerA, t0.Add(2*time.Hour)))

	// assert
	assert.ErrorIs(t, err, core.ErrOverRelease)
	assert.Equal(t, before, state)
}

func Test_BookState_HoldIsConsumedByHoldersBorrow(t *testing.T) {
	// arrange
	state, err := core.ProjectBookState(bookA, core.DomainEvents{
		core.BuildBookRegistered(bookA, 1, t0),
		core.BuildBookReserved(reserveA, bookA, borrowerA, t0.AddDate(0, 0, 7), t0),
	})
	require.NoError(t, err)
	reservation, _ := state.Reservation(reserveA)
	require.NoError(t, state.Apply(core.BuildReservationFulfilled(reservation, t0.AddDate(0, 0, 7), t0)))

	// act
	err = state.Apply(core.BuildBookLentToBorrower(loanA, bookA, borrowerA, t0.AddDate(0, 0, 30), true, reserveA, t0))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, state.Inventory.HeldQuantity)
	assert.Equal(t, 0, state.Inventory.AvailableQuantity)
	assert.Equal(t, core.StatusBorrowed, state.Inventory.Status)

	held, _ := state.Reservation(reserveA)
	assert.Equal(t, core.ReservationStatusFulfilled, held.Status)
	assert.False(t, held.HoldActive)
}

func Test_BookState_NextQueuedReservation_IsFIFO(t *testing.T) {
	// arrange
	state, err := core.ProjectBookState(bookA, core.DomainEvents{
		core.BuildBookRegistered(bookA, 1, t0),
		core.BuildBookReserved(reserveB, bookA, borrowerB, t0.AddDate(0, 0, 8), t0.Add(time.Hour)),
		core.BuildBookReserved(reserveA, bookA, borrowerA, t0.AddDate(0, 0, 7), t0),
	})
	require.NoError(t, err)

	// act
	next, ok := state.NextQueuedReservation()

	// assert
	require.True(t, ok)
	assert.Equal(t, reserveA, next.ID)
	assert.Equal(t, 2, state.QueuedReservations())
}

func Test_BookState_NotificationClaimAndReset(t *testing.T) {
	// arrange
	state, err := core.ProjectBookState(bookA, core.DomainEvents{
		core.BuildBookRegistered(bookA, 1, t0),
		core.BuildBookReserved(reserveA, bookA, borrowerA, t0.AddDate(0, 0, 7), t0),
	})
	require.NoError(t, err)
	reservation, _ := state.Reservation(reserveA)
	require.NoError(t, state.Apply(core.BuildReservationFulfilled(reservation, t0.AddDate(0, 0, 7), t0)))

	// act + assert
	held, _ := state.Reservation(reserveA)
	assert.True(t, held.AwaitsNotification())

	require.NoError(t, state.Apply(core.BuildReservationHolderNotified(held, t0)))
	held, _ = state.Reservation(reserveA)
	assert.False(t, held.AwaitsNotification())

	require.NoError(t, state.Apply(core.BuildReservationNotificationFailed(held, "broker down", t0)))
	held, _ = state.Reservation(reserveA)
	assert.True(t, held.AwaitsNotification())
	assert.Equal(t, 1, held.FailedNotices)
}

func Test_BookState_Apply_RegisteringTwiceIsConflict(t *testing.T) {
	// arrange
	state, err := core.ProjectBookState(bookA, core.DomainEvents{core.BuildBookRegistered(bookA, 1, t0)})
	require.NoError(t, err)

	// act
	err = state.Apply(core.BuildBookRegistered(bookA, 1, t0))

	// assert
	assert.ErrorIs(t, err, core.ErrConflict)
}
