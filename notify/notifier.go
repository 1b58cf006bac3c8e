package notify

import (
	"context"
	"time"
)

// RoutingKeyReservationReady is the routing key of ReservationReady messages.
const RoutingKeyReservationReady = "reservation.ready"

// ReservationReady is the message sent to the holder of a fulfilled reservation.
type ReservationReady struct {
	ReservationID string    `json:"reservation_id"`
	BookID        string    `json:"book_id"`
	BorrowerID    string    `json:"borrower_id"`
	HoldUntil     time.Time `json:"hold_until"`
	NotifiedAt    time.Time `json:"notified_at"`
}

// Notifier delivers ReservationReady messages.
type Notifier interface {
	NotifyReservationReady(ctx context.Context, message ReservationReady) error
}
