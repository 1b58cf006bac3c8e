package cancelreservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iguene/Bibliovirtuelle/lending/features/command/cancelreservation"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func givenReservation(bookID, borrowerID, reservationID uuid.UUID) core.DomainEvents {
	return core.DomainEvents{
		core.BuildBookRegistered(bookID.String(), 1, now.Add(-time.Hour)),
		core.BuildBookReserved(reservationID.String(), bookID.String(), borrowerID.String(), now.Add(24*time.Hour), now.Add(-time.Minute)),
	}
}

func Test_Decide_Success_HolderCancels(t *testing.T) {
	// arrange
	bookID, borrowerID, reservationID := uuid.New(), uuid.New(), uuid.New()
	history := givenReservation(bookID, borrowerID, reservationID)

	// act
	result := cancelreservation.Decide(history, cancelreservation.BuildCommand(reservationID, core.Actor{ID: borrowerID.String()}, now), core.DefaultPolicy())

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	cancelled := result.Events[0].(core.ReservationCancelled)
	assert.Equal(t, borrowerID.String(), cancelled.CancelledBy)
}

func Test_Decide_Error_SomeoneElseCancels(t *testing.T) {
	// arrange
	bookID, borrowerID, reservationID := uuid.New(), uuid.New(), uuid.New()
	history := givenReservation(bookID, borrowerID, reservationID)

	// act
	result := cancelreservation.Decide(history, cancelreservation.BuildCommand(reservationID, core.Actor{ID: uuid.NewString()}, now), core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrForbidden)
}

func Test_Decide_Error_ExpiredReservation(t *testing.T) {
	// arrange
	bookID, borrowerID, reservationID := uuid.New(), uuid.New(), uuid.New()
	history := givenReservation(bookID, borrowerID, reservationID)

	// act
	result := cancelreservation.Decide(history, cancelreservation.BuildCommand(reservationID, core.Actor{Admin: true}, now.Add(48*time.Hour)), core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrConflict)
	assert.False(t, result.HasEventsToAppend())
}

func Test_Decide_Idempotent_AlreadyCancelled(t *testing.T) {
	// arrange
	bookID, borrowerID, reservationID := uuid.New(), uuid.New(), uuid.New()
	history := givenReservation(bookID, borrowerID, reservationID)
	reservation := core.Reservation{ID: reservationID.String(), BookID: bookID.String(), BorrowerID: borrowerID.String()}
	history = append(history, core.BuildReservationCancelled(reservation, borrowerID.String(), now))

	// act
	result := cancelreservation.Decide(history, cancelreservation.BuildCommand(reservationID, core.Actor{ID: borrowerID.String()}, now), core.DefaultPolicy())

	// assert
	assert.NoError(t, result.HasError())
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error_UnknownReservation(t *testing.T) {
	// act
	result := cancelreservation.Decide(nil, cancelreservation.BuildCommand(uuid.New(), core.Actor{Admin: true}, now), core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrNotFound)
}
