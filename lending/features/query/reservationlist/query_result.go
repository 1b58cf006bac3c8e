package reservationlist

import (
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// ReservationList holds the matching reservations, newest first.
type ReservationList struct {
	Reservations   []core.Reservation
	SequenceNumber uint
}

// GetSequenceNumber returns the highest sequence number included in the result.
func (r ReservationList) GetSequenceNumber() uint {
	return r.SequenceNumber
}
