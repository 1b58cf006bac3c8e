package pendingwork_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iguene/Bibliovirtuelle/lending/features/query/pendingwork"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

var now = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func Test_ProjectPendingWork(t *testing.T) {
	// arrange
	quietBook, overdueBook, holdBook := uuid.NewString(), uuid.NewString(), uuid.NewString()
	holder := core.Reservation{ID: uuid.NewString(), BookID: holdBook, BorrowerID: uuid.NewString()}

	history := core.DomainEvents{
		core.BuildBookRegistered(quietBook, 1, now.AddDate(0, 0, -40)),
		core.BuildBookRegistered(overdueBook, 1, now.AddDate(0, 0, -40)),
		core.BuildBookRegistered(holdBook, 1, now.AddDate(0, 0, -40)),
		core.BuildBookLentToBorrower(uuid.NewString(), overdueBook, uuid.NewString(), now.AddDate(0, 0, -5), false, "", now.AddDate(0, 0, -35)),
		core.BuildBookReserved(holder.ID, holdBook, holder.BorrowerID, now.AddDate(0, 0, 6), now.AddDate(0, 0, -1)),
		core.BuildReservationFulfilled(holder, now.AddDate(0, 0, 6), now.AddDate(0, 0, -1)),
	}

	// act
	result, err := pendingwork.ProjectPendingWork(history, pendingwork.BuildQuery(now), core.DefaultPolicy(), 6)

	// assert
	require.NoError(t, err)
	assert.Equal(t, []core.BookIDString{overdueBook}, result.BooksToCorrect)
	assert.Equal(t, []core.ReservationIDString{holder.ID}, result.ReservationsToNotify)
	assert.Equal(t, uint(6), result.GetSequenceNumber())
}

func Test_ProjectPendingWork_NotifiedHolderIsDone(t *testing.T) {
	// arrange
	bookID := uuid.NewString()
	holder := core.Reservation{ID: uuid.NewString(), BookID: bookID, BorrowerID: uuid.NewString()}
	history := core.DomainEvents{
		core.BuildBookRegistered(bookID, 1, now.AddDate(0, 0, -2)),
		core.BuildBookReserved(holder.ID, bookID, holder.BorrowerID, now.AddDate(0, 0, 6), now.AddDate(0, 0, -1)),
		core.BuildReservationFulfilled(holder, now.AddDate(0, 0, 6), now.AddDate(0, 0, -1)),
		core.BuildReservationHolderNotified(holder, now.Add(-time.Hour)),
	}

	// act
	result, err := pendingwork.ProjectPendingWork(history, pendingwork.BuildQuery(now), core.DefaultPolicy(), 4)

	// assert
	require.NoError(t, err)
	assert.True(t, result.IsEmpty())
}
