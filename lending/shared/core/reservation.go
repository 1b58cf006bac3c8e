package core

import (
	"time"
)

// Reservation statuses. All but active are terminal.
const (
	ReservationStatusActive    = "active"
	ReservationStatusFulfilled = "fulfilled"
	ReservationStatusCancelled = "cancelled"
	ReservationStatusExpired   = "expired"
)

// Reservation is a queued claim on a book.
//
// A fulfilled reservation whose unit was set aside has HoldActive set until the holder borrows it
// or HoldUntil passes. Notified tracks whether the holder was told about the hold.
type Reservation struct {
	ID              ReservationIDString
	BookID          BookIDString
	BorrowerID      BorrowerIDString
	ReservationDate time.Time
	ExpiryDate      time.Time
	Status          string
	Notified        bool
	HoldUntil       *time.Time
	HoldActive      bool
	HoldLapsed      bool
	FailedNotices   int
}

// IsActive reports whether the reservation is still queued.
func (r Reservation) IsActive() bool {
	return r.Status == ReservationStatusActive
}

// IsEffectivelyActive reports whether the reservation is queued and not yet past its expiry at now.
func (r Reservation) IsEffectivelyActive(now time.Time) bool {
	return r.IsActive() && !now.After(r.ExpiryDate)
}

// AwaitsNotification reports whether the holder of an active hold has not been told yet.
func (r Reservation) AwaitsNotification() bool {
	return r.HoldActive && !r.Notified
}

// IsReservationStatus reports whether status names a reservation status.
func IsReservationStatus(status string) bool {
	switch status {
	case ReservationStatusActive, ReservationStatusFulfilled, ReservationStatusCancelled, ReservationStatusExpired:
		return true
	default:
		return false
	}
}
