package reviewbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const (
	commandType = "ReviewBook"
)

// Command represents the intent of a reader to review a book.
type Command struct {
	ReviewID   uuid.UUID
	BookID     uuid.UUID
	ReviewerID uuid.UUID
	Rating     int
	Comment    string
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	reviewID uuid.UUID,
	bookID uuid.UUID,
	reviewerID uuid.UUID,
	rating int,
	comment string,
	occurredAt time.Time,
) Command {

	return Command{
		ReviewID:   reviewID,
		BookID:     bookID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
