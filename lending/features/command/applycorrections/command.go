package applycorrections

import (
	"time"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const (
	commandType = "ApplyCorrections"
)

// Command represents the intent to persist the corrections due for a book at OccurredAt.
type Command struct {
	BookID     uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
