package borrowbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iguene/Bibliovirtuelle/lending/features/command/borrowbook"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

var now = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func Test_Decide_Success_TakesAnAvailableUnit(t *testing.T) {
	// arrange
	bookID, borrowerID, loanID := uuid.New(), uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 2, now.Add(-time.Hour)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(loanID, bookID, borrowerID, now), core.DefaultPolicy())

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	lent, ok := result.Events[0].(core.BookLentToBorrower)
	require.True(t, ok)
	assert.Equal(t, loanID.String(), lent.LoanID)
	assert.Equal(t, borrowerID.String(), lent.BorrowerID)
	assert.False(t, lent.FromHold)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC), lent.DueDate)
}

func Test_Decide_Error_BookNotRegistered(t *testing.T) {
	// act
	result := borrowbook.Decide(nil, borrowbook.BuildCommand(uuid.New(), uuid.New(), uuid.New(), now), core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
	assert.False(t, result.HasEventsToAppend())
}

func Test_Decide_Error_NoUnitAvailable(t *testing.T) {
	// arrange
	bookID := uuid.New()
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 1, now.Add(-time.Hour)),
		core.BuildBookLentToBorrower(uuid.NewString(), bookID.String(), uuid.NewString(), now.AddDate(0, 0, 30), false, "", now.Add(-time.Minute)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(uuid.New(), bookID, uuid.New(), now), core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotAvailable)
	assert.False(t, result.HasEventsToAppend())
}

func Test_Decide_Error_UnderAdministrativeHold(t *testing.T) {
	// arrange
	bookID := uuid.New()
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 3, now.Add(-time.Hour)),
		core.BuildBookAdministrativeStatusChanged(bookID.String(), core.StatusMaintenance, now.Add(-time.Minute)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(uuid.New(), bookID, uuid.New(), now), core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotAvailable)
}

func Test_Decide_Error_LoanLimitReached(t *testing.T) {
	// arrange
	bookID, borrowerID := uuid.New(), uuid.New()
	policy := core.DefaultPolicy()
	policy.MaxLoansPerBorrower = 2

	history := core.DomainEvents{core.BuildBookRegistered(bookID.String(), 5, now.Add(-time.Hour))}
	for i := 0; i < 2; i++ {
		history = append(history, core.BuildBookLentToBorrower(
			uuid.NewString(), uuid.NewString(), borrowerID.String(), now.AddDate(0, 0, 30), false, "", now.Add(-time.Minute),
		))
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(uuid.New(), bookID, borrowerID, now), policy)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrLoanLimitReached)
	assert.ErrorIs(t, result.HasError(), core.ErrNotAvailable)
}

func Test_Decide_Success_ReturnedLoansDoNotCountTowardsTheLimit(t *testing.T) {
	// arrange
	bookID, borrowerID := uuid.New(), uuid.New()
	policy := core.DefaultPolicy()
	policy.MaxLoansPerBorrower = 1

	otherBook := uuid.NewString()
	previousLoan := core.Loan{ID: uuid.NewString(), BookID: otherBook, BorrowerID: borrowerID.String()}
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 1, now.Add(-time.Hour)),
		core.BuildBookLentToBorrower(previousLoan.ID, otherBook, borrowerID.String(), now.AddDate(0, 0, 30), false, "", now.Add(-time.Hour)),
		core.BuildBookReturnedByBorrower(previousLoan, core.Fine(now, now, policy.LateFeePerDay), borrowerID.String(), now.Add(-time.Minute)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(uuid.New(), bookID, borrowerID, now), policy)

	// assert
	assert.NoError(t, result.HasError())
}

func Test_Decide_Success_ConsumesTheBorrowersHold(t *testing.T) {
	// arrange
	bookID, holderID, reservationID := uuid.New(), uuid.New(), uuid.New()
	reservation := core.Reservation{ID: reservationID.String(), BookID: bookID.String(), BorrowerID: holderID.String()}
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 1, now.Add(-48*time.Hour)),
		core.BuildBookReserved(reservationID.String(), bookID.String(), holderID.String(), now.AddDate(0, 0, 5), now.Add(-47*time.Hour)),
		core.BuildReservationFulfilled(reservation, now.AddDate(0, 0, 6), now.Add(-24*time.Hour)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(uuid.New(), bookID, holderID, now), core.DefaultPolicy())

	// assert
	require.NoError(t, result.HasError())
	lent := result.Events[0].(core.BookLentToBorrower)
	assert.True(t, lent.FromHold)
	assert.Equal(t, reservationID.String(), lent.ReservationID)
}

func Test_Decide_Error_UnitHeldForSomeoneElse(t *testing.T) {
	// arrange
	bookID, holderID, reservationID := uuid.New(), uuid.New(), uuid.New()
	reservation := core.Reservation{ID: reservationID.String(), BookID: bookID.String(), BorrowerID: holderID.String()}
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 1, now.Add(-48*time.Hour)),
		core.BuildBookReserved(reservationID.String(), bookID.String(), holderID.String(), now.AddDate(0, 0, 5), now.Add(-47*time.Hour)),
		core.BuildReservationFulfilled(reservation, now.AddDate(0, 0, 6), now.Add(-24*time.Hour)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(uuid.New(), bookID, uuid.New(), now), core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotAvailable)
}

func Test_Decide_Success_PrependsOverdueCorrection(t *testing.T) {
	// arrange
	bookID := uuid.New()
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 2, now.AddDate(0, -2, 0)),
		core.BuildBookLentToBorrower(uuid.NewString(), bookID.String(), uuid.NewString(), now.AddDate(0, 0, -3), false, "", now.AddDate(0, -1, 0)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(uuid.New(), bookID, uuid.New(), now), core.DefaultPolicy())

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 2)
	assert.IsType(t, core.LoanMarkedOverdue{}, result.Events[0])
	assert.IsType(t, core.BookLentToBorrower{}, result.Events[1])
}

func Test_Decide_Idempotent_LoanAlreadyExists(t *testing.T) {
	// arrange
	bookID, borrowerID, loanID := uuid.New(), uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 1, now.Add(-time.Hour)),
		core.BuildBookLentToBorrower(loanID.String(), bookID.String(), borrowerID.String(), now.AddDate(0, 0, 30), false, "", now.Add(-time.Minute)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(loanID, bookID, borrowerID, now), core.DefaultPolicy())

	// assert
	assert.NoError(t, result.HasError())
	assert.True(t, result.IsIdempotent())
	assert.False(t, result.HasEventsToAppend())
}

func Test_Decide_Error_HolderBlockedByAdministrativeHold(t *testing.T) {
	// arrange
	bookID, holderID, reservationID := uuid.New(), uuid.New(), uuid.New()
	reservation := core.Reservation{ID: reservationID.String(), BookID: bookID.String(), BorrowerID: holderID.String()}
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 1, now.Add(-48*time.Hour)),
		core.BuildBookReserved(reservationID.String(), bookID.String(), holderID.String(), now.AddDate(0, 0, 5), now.Add(-47*time.Hour)),
		core.BuildReservationFulfilled(reservation, now.AddDate(0, 0, 6), now.Add(-24*time.Hour)),
		core.BuildBookAdministrativeStatusChanged(bookID.String(), core.StatusMaintenance, now.Add(-time.Hour)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(uuid.New(), bookID, holderID, now), core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotAvailable)
	assert.Empty(t, result.Events)
}

func Test_Decide_Error_LoanIDUsedOnAnotherBook(t *testing.T) {
	// arrange
	bookID, otherBookID, loanID := uuid.New(), uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 1, now.Add(-time.Hour)),
		core.BuildBookLentToBorrower(loanID.String(), otherBookID.String(), uuid.NewString(), now.AddDate(0, 0, 30), false, "", now.Add(-time.Minute)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(loanID, bookID, uuid.New(), now), core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrLoanIDTaken)
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
}

func Test_Decide_Error_LoanIDUsedByAnotherBorrower(t *testing.T) {
	// arrange
	bookID, loanID := uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 2, now.Add(-time.Hour)),
		core.BuildBookLentToBorrower(loanID.String(), bookID.String(), uuid.NewString(), now.AddDate(0, 0, 30), false, "", now.Add(-time.Minute)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(loanID, bookID, uuid.New(), now), core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrLoanIDTaken)
}

func Test_Decide_Idempotent_SameLoanIDSameBorrower(t *testing.T) {
	// arrange
	bookID, borrowerID, loanID := uuid.New(), uuid.New(), uuid.New()
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 2, now.Add(-time.Hour)),
		core.BuildBookLentToBorrower(loanID.String(), bookID.String(), borrowerID.String(), now.AddDate(0, 0, 30), false, "", now.Add(-time.Minute)),
	}

	// act
	result := borrowbook.Decide(history, borrowbook.BuildCommand(loanID, bookID, borrowerID, now), core.DefaultPolicy())

	// assert
	require.NoError(t, result.HasError())
	assert.True(t, result.IsIdempotent())
	assert.Empty(t, result.Events)
}
