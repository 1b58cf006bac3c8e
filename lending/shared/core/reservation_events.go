package core

import (
	"time"
)

const (
	BookReservedEventType                  = "BookReserved"
	ReservationFulfilledEventType          = "ReservationFulfilled"
	ReservationExpiredEventType            = "ReservationExpired"
	ReservationCancelledEventType          = "ReservationCancelled"
	ReservationHoldLapsedEventType         = "ReservationHoldLapsed"
	ReservationHolderNotifiedEventType     = "ReservationHolderNotified"
	ReservationNotificationFailedEventType = "ReservationNotificationFailed"
)

// BookReserved queues a borrower for a book.
type BookReserved struct {
	ReservationID   ReservationIDString
	BookID          BookIDString
	BorrowerID      BorrowerIDString
	ReservationDate time.Time
	ExpiryDate      time.Time
	OccurredAt      OccurredAtTS
}

// BuildBookReserved creates a new BookReserved event.
func BuildBookReserved(
	reservationID ReservationIDString,
	bookID BookIDString,
	borrowerID BorrowerIDString,
	expiryDate time.Time,
	occurredAt time.Time,
) BookReserved {

	return BookReserved{
		ReservationID:   reservationID,
		BookID:          bookID,
		BorrowerID:      borrowerID,
		ReservationDate: ToOccurredAt(occurredAt),
		ExpiryDate:      ToOccurredAt(expiryDate),
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookReserved) EventType() string {
	return BookReservedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReserved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e BookReserved) ForBook() BookIDString {
	return e.BookID
}

// ReservationFulfilled sets a freed unit aside for the holder until HoldUntil.
type ReservationFulfilled struct {
	ReservationID ReservationIDString
	BookID        BookIDString
	BorrowerID    BorrowerIDString
	HoldUntil     time.Time
	OccurredAt    OccurredAtTS
}

// BuildReservationFulfilled creates a new ReservationFulfilled event.
func BuildReservationFulfilled(reservation Reservation, holdUntil time.Time, occurredAt time.Time) ReservationFulfilled {
	return ReservationFulfilled{
		ReservationID: reservation.ID,
		BookID:        reservation.BookID,
		BorrowerID:    reservation.BorrowerID,
		HoldUntil:     ToOccurredAt(holdUntil),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationFulfilled) EventType() string {
	return ReservationFulfilledEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationFulfilled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e ReservationFulfilled) ForBook() BookIDString {
	return e.BookID
}

// ReservationExpired is the lazy correction of a queued reservation past its expiry.
type ReservationExpired struct {
	ReservationID ReservationIDString
	BookID        BookIDString
	BorrowerID    BorrowerIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationExpired creates a new ReservationExpired event.
func BuildReservationExpired(reservation Reservation, occurredAt time.Time) ReservationExpired {
	return ReservationExpired{
		ReservationID: reservation.ID,
		BookID:        reservation.BookID,
		BorrowerID:    reservation.BorrowerID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationExpired) EventType() string {
	return ReservationExpiredEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationExpired) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e ReservationExpired) ForBook() BookIDString {
	return e.BookID
}

// ReservationCancelled withdraws a queued reservation.
type ReservationCancelled struct {
	ReservationID ReservationIDString
	BookID        BookIDString
	BorrowerID    BorrowerIDString
	CancelledBy   BorrowerIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationCancelled creates a new ReservationCancelled event.
func BuildReservationCancelled(reservation Reservation, cancelledBy BorrowerIDString, occurredAt time.Time) ReservationCancelled {
	return ReservationCancelled{
		ReservationID: reservation.ID,
		BookID:        reservation.BookID,
		BorrowerID:    reservation.BorrowerID,
		CancelledBy:   cancelledBy,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationCancelled) EventType() string {
	return ReservationCancelledEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationCancelled) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e ReservationCancelled) ForBook() BookIDString {
	return e.BookID
}

// ReservationHoldLapsed releases the unit of a hold that was not collected in time.
type ReservationHoldLapsed struct {
	ReservationID ReservationIDString
	BookID        BookIDString
	BorrowerID    BorrowerIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationHoldLapsed creates a new ReservationHoldLapsed event.
func BuildReservationHoldLapsed(reservation Reservation, occurredAt time.Time) ReservationHoldLapsed {
	return ReservationHoldLapsed{
		ReservationID: reservation.ID,
		BookID:        reservation.BookID,
		BorrowerID:    reservation.BorrowerID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationHoldLapsed) EventType() string {
	return ReservationHoldLapsedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationHoldLapsed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e ReservationHoldLapsed) ForBook() BookIDString {
	return e.BookID
}

// ReservationHolderNotified claims the ready notification of a hold.
type ReservationHolderNotified struct {
	ReservationID ReservationIDString
	BookID        BookIDString
	BorrowerID    BorrowerIDString
	OccurredAt    OccurredAtTS
}

// BuildReservationHolderNotified creates a new ReservationHolderNotified event.
func BuildReservationHolderNotified(reservation Reservation, occurredAt time.Time) ReservationHolderNotified {
	return ReservationHolderNotified{
		ReservationID: reservation.ID,
		BookID:        reservation.BookID,
		BorrowerID:    reservation.BorrowerID,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationHolderNotified) EventType() string {
	return ReservationHolderNotifiedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationHolderNotified) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e ReservationHolderNotified) ForBook() BookIDString {
	return e.BookID
}

// ReservationNotificationFailed resets a claimed notification whose delivery failed.
type ReservationNotificationFailed struct {
	ReservationID ReservationIDString
	BookID        BookIDString
	BorrowerID    BorrowerIDString
	Reason        string
	OccurredAt    OccurredAtTS
}

// BuildReservationNotificationFailed creates a new ReservationNotificationFailed event.
func BuildReservationNotificationFailed(reservation Reservation, reason string, occurredAt time.Time) ReservationNotificationFailed {
	return ReservationNotificationFailed{
		ReservationID: reservation.ID,
		BookID:        reservation.BookID,
		BorrowerID:    reservation.BorrowerID,
		Reason:        reason,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ReservationNotificationFailed) EventType() string {
	return ReservationNotificationFailedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationNotificationFailed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e ReservationNotificationFailed) ForBook() BookIDString {
	return e.BookID
}
