package reservationlist_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iguene/Bibliovirtuelle/lending/features/query/reservationlist"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

var now = time.Date(2024, 8, 20, 12, 0, 0, 0, time.UTC)

func history(bookA, bookB, alice, bob string) core.DomainEvents {
	return core.DomainEvents{
		core.BuildBookRegistered(bookA, 0, now.AddDate(0, 0, -30)),
		core.BuildBookRegistered(bookB, 0, now.AddDate(0, 0, -30)),
		core.BuildBookReserved("r-old", bookA, alice, now.AddDate(0, 0, -1), now.AddDate(0, 0, -8)),
		core.BuildBookReserved("r-bob", bookA, bob, now.AddDate(0, 0, 6), now.AddDate(0, 0, -1)),
		core.BuildBookReserved("r-new", bookB, alice, now.AddDate(0, 0, 7), now.Add(-time.Hour)),
	}
}

func Test_ProjectReservationList(t *testing.T) {
	bookA, bookB, alice, bob := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	events := history(bookA.String(), bookB.String(), alice.String(), bob.String())

	testCases := []struct {
		name     string
		query    reservationlist.Query
		expected []string
	}{
		{name: "everything newest first", query: reservationlist.BuildQuery(uuid.Nil, uuid.Nil, "", now), expected: []string{"r-new", "r-bob", "r-old"}},
		{name: "by borrower", query: reservationlist.BuildQuery(uuid.Nil, alice, "", now), expected: []string{"r-new", "r-old"}},
		{name: "by book", query: reservationlist.BuildQuery(bookA, uuid.Nil, "", now), expected: []string{"r-bob", "r-old"}},
		{name: "expired by correction", query: reservationlist.BuildQuery(uuid.Nil, uuid.Nil, core.ReservationStatusExpired, now), expected: []string{"r-old"}},
		{name: "active", query: reservationlist.BuildQuery(uuid.Nil, alice, core.ReservationStatusActive, now), expected: []string{"r-new"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result, err := reservationlist.ProjectReservationList(events, tc.query, core.DefaultPolicy(), 5)

			// assert
			require.NoError(t, err)

			ids := make([]string, 0, len(result.Reservations))
			for _, reservation := range result.Reservations {
				ids = append(ids, reservation.ID)
			}

			assert.Equal(t, tc.expected, ids)
		})
	}
}

func Test_Query_Validate_RejectsUnknownStatus(t *testing.T) {
	// act
	err := reservationlist.BuildQuery(uuid.Nil, uuid.Nil, "queued", now).Validate()

	// assert
	assert.ErrorIs(t, err, core.ErrUnknownStatusFilter)
}
