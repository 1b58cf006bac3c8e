package setadministrativestatus

import (
	"time"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const (
	commandType = "SetAdministrativeStatus"
)

// Command represents the intent to set or clear an administrative hold.
// Status is core.StatusMaintenance, core.StatusLost, or empty to clear the hold.
type Command struct {
	BookID     uuid.UUID
	Status     string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, status string, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Status:     status,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
