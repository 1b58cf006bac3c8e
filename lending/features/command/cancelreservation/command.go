package cancelreservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const (
	commandType = "CancelReservation"
)

// Command represents the intent to cancel a reservation.
type Command struct {
	ReservationID uuid.UUID
	Actor         core.Actor
	OccurredAt    core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(reservationID uuid.UUID, actor core.Actor, occurredAt time.Time) Command {
	return Command{
		ReservationID: reservationID,
		Actor:         actor,
		OccurredAt:    core.ToOccurredAt(occurredAt),
	}
}
