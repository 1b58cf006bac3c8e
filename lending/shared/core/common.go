package core

import (
	"time"
)

// BookIDString represents a book identifier
type BookIDString = string

// BorrowerIDString represents a borrower identifier
type BorrowerIDString = string

// LoanIDString represents a loan identifier
type LoanIDString = string

// ReservationIDString represents a reservation identifier
type ReservationIDString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}

// CivilDate returns midnight UTC of t's UTC calendar day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b, negative if b is before a.
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / 24)
}

// Actor is whoever triggers an operation on a loan or reservation.
type Actor struct {
	ID    BorrowerIDString
	Admin bool
}

// MayActFor reports whether the actor may mutate a record owned by ownerID.
func (a Actor) MayActFor(ownerID BorrowerIDString) bool {
	return a.Admin || a.ID == ownerID
}
