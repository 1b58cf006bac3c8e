package inventoryview

import (
	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// ProjectInventoryView projects the book as of AsOf. Lapsed holds are already returned to the pool
// or passed on in the view.
func ProjectInventoryView(
	history core.DomainEvents,
	query Query,
	policy core.Policy,
	maxSequenceNumber eventstore.MaxSequenceNumberUint,
) (InventoryView, error) {

	s, err := core.ProjectBookState(query.BookID.String(), history)
	if err != nil {
		return InventoryView{}, err
	}

	if !s.Registered {
		return InventoryView{}, core.ErrBookNotFound
	}

	corrected, _, err := core.Correct(s, query.AsOf, policy)
	if err != nil {
		return InventoryView{}, err
	}

	return InventoryView{
		Inventory:          corrected.Inventory,
		OutstandingLoans:   len(corrected.OutstandingLoans()),
		QueuedReservations: corrected.QueuedReservations(),
		SequenceNumber:     uint(maxSequenceNumber),
	}, nil
}

// BuildEventFilter creates the filter for querying all events of the book.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	return shell.BookStreamFilter(bookID.String())
}
