package pendingwork

import (
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// PendingWork lists the books that need corrections and the reservations that need a notification.
// Both lists are in order of first appearance in the store.
type PendingWork struct {
	BooksToCorrect       []core.BookIDString
	ReservationsToNotify []core.ReservationIDString
	SequenceNumber       uint
}

// IsEmpty reports whether there is nothing to do.
func (r PendingWork) IsEmpty() bool {
	return len(r.BooksToCorrect) == 0 && len(r.ReservationsToNotify) == 0
}

// GetSequenceNumber returns the highest sequence number included in the result.
func (r PendingWork) GetSequenceNumber() uint {
	return r.SequenceNumber
}
