package adjustquantity

import (
	"time"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const (
	commandType = "AdjustQuantity"
)

// Command represents the intent to change the owned quantity of a book.
type Command struct {
	BookID     uuid.UUID
	Quantity   int
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID, quantity int, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Quantity:   quantity,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
