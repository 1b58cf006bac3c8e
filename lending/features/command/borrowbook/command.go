package borrowbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const (
	commandType = "BorrowBook"
)

// Command represents the intent of a borrower to borrow one unit of a book.
// LoanID is chosen by the caller, which makes a retried command idempotent.
type Command struct {
	LoanID     uuid.UUID
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID uuid.UUID, bookID uuid.UUID, borrowerID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		BookID:     bookID,
		BorrowerID: borrowerID,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
