package core

import (
	"time"
)

const (
	BookRegisteredEventType                  = "BookRegistered"
	BookQuantityAdjustedEventType            = "BookQuantityAdjusted"
	BookAdministrativeStatusChangedEventType = "BookAdministrativeStatusChanged"
)

// BookRegistered creates the inventory record of a book with all units available.
type BookRegistered struct {
	BookID     BookIDString
	Quantity   int
	OccurredAt OccurredAtTS
}

// BuildBookRegistered creates a new BookRegistered event.
func BuildBookRegistered(bookID BookIDString, quantity int, occurredAt time.Time) BookRegistered {
	return BookRegistered{
		BookID:     bookID,
		Quantity:   quantity,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookRegistered) EventType() string {
	return BookRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e BookRegistered) ForBook() BookIDString {
	return e.BookID
}

// BookQuantityAdjusted sets the owned quantity of a book.
type BookQuantityAdjusted struct {
	BookID     BookIDString
	Quantity   int
	OccurredAt OccurredAtTS
}

// BuildBookQuantityAdjusted creates a new BookQuantityAdjusted event.
func BuildBookQuantityAdjusted(bookID BookIDString, quantity int, occurredAt time.Time) BookQuantityAdjusted {
	return BookQuantityAdjusted{
		BookID:     bookID,
		Quantity:   quantity,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookQuantityAdjusted) EventType() string {
	return BookQuantityAdjustedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookQuantityAdjusted) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e BookQuantityAdjusted) ForBook() BookIDString {
	return e.BookID
}

// BookAdministrativeStatusChanged sets (maintenance, lost) or clears ("") the administrative hold.
type BookAdministrativeStatusChanged struct {
	BookID     BookIDString
	Status     string
	OccurredAt OccurredAtTS
}

// BuildBookAdministrativeStatusChanged creates a new BookAdministrativeStatusChanged event.
func BuildBookAdministrativeStatusChanged(bookID BookIDString, status string, occurredAt time.Time) BookAdministrativeStatusChanged {
	return BookAdministrativeStatusChanged{
		BookID:     bookID,
		Status:     status,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookAdministrativeStatusChanged) EventType() string {
	return BookAdministrativeStatusChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAdministrativeStatusChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e BookAdministrativeStatusChanged) ForBook() BookIDString {
	return e.BookID
}
