package inventoryview

import (
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// InventoryView is the inventory record of a book plus queue and loan counts.
type InventoryView struct {
	Inventory          core.InventoryRecord
	OutstandingLoans   int
	QueuedReservations int
	SequenceNumber     uint
}

// GetSequenceNumber returns the highest sequence number included in the view.
func (v InventoryView) GetSequenceNumber() uint {
	return v.SequenceNumber
}
