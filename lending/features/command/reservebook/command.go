package reservebook

import (
	"time"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const (
	commandType = "ReserveBook"
)

// Command represents the intent of a borrower to reserve a book.
// ReservationID is chosen by the caller, which makes a retried command idempotent.
type Command struct {
	ReservationID uuid.UUID
	BookID        uuid.UUID
	BorrowerID    uuid.UUID
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID uuid.UUID, bookID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		BookID:        bookID,
		BorrowerID:    borrowerID,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
