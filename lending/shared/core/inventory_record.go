package core

// Book statuses. maintenance and lost are administrative holds and override the counters.
const (
	StatusAvailable   = "available"
	StatusBorrowed    = "borrowed"
	StatusReserved    = "reserved"
	StatusMaintenance = "maintenance"
	StatusLost        = "lost"
)

// InventoryRecord holds the counters of one book.
//
// Invariants: 0 <= AvailableQuantity, AvailableQuantity+HeldQuantity <= Quantity,
// and Status == StatusAvailable iff AvailableQuantity > 0 and no administrative hold is set.
// HeldQuantity counts units set aside for holders of fulfilled reservations.
type InventoryRecord struct {
	BookID             BookIDString
	Quantity           int
	AvailableQuantity  int
	HeldQuantity       int
	AdministrativeHold string
	Status             string
}

// NewInventoryRecord returns a record with all units available.
func NewInventoryRecord(bookID BookIDString, quantity int) InventoryRecord {
	r := InventoryRecord{
		BookID:            bookID,
		Quantity:          quantity,
		AvailableQuantity: quantity,
	}
	r.refreshStatus()

	return r
}

// TryReserveUnit takes one unit out of the available pool.
func (r *InventoryRecord) TryReserveUnit() error {
	if r.AdministrativeHold != "" || r.AvailableQuantity == 0 {
		return ErrNoUnitAvailable
	}

	r.AvailableQuantity--
	r.refreshStatus()

	return nil
}

// ReleaseUnit puts one unit back into the available pool. It never clamps.
func (r *InventoryRecord) ReleaseUnit() error {
	if r.AvailableQuantity+r.HeldQuantity+1 > r.Quantity {
		return ErrReleaseExceedsQuantity
	}

	r.AvailableQuantity++
	r.refreshStatus()

	return nil
}

// HoldUnit sets an available unit aside for a reservation holder.
func (r *InventoryRecord) HoldUnit() error {
	if err := r.TryReserveUnit(); err != nil {
		return err
	}

	r.HeldQuantity++
	r.refreshStatus()

	return nil
}

// ConsumeHeldUnit hands a held unit to its holder as a loan. An administrative hold blocks it like any borrow.
func (r *InventoryRecord) ConsumeHeldUnit() error {
	if r.AdministrativeHold != "" || r.HeldQuantity == 0 {
		return ErrNoUnitAvailable
	}

	r.HeldQuantity--
	r.refreshStatus()

	return nil
}

// ReleaseHeldUnit returns a held unit whose hold lapsed to the available pool.
func (r *InventoryRecord) ReleaseHeldUnit() error {
	if r.HeldQuantity == 0 || r.AvailableQuantity+r.HeldQuantity > r.Quantity {
		return ErrReleaseExceedsQuantity
	}

	r.HeldQuantity--
	r.AvailableQuantity++
	r.refreshStatus()

	return nil
}

// AdjustQuantity sets the owned quantity and moves AvailableQuantity by the same delta,
// clamped so that the counters stay consistent. Units held for reservations cannot be removed.
// The quantity may drop below the number of outstanding loans, in which case a later return can fail with ErrOverRelease.
func (r *InventoryRecord) AdjustQuantity(quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}

	if quantity < r.HeldQuantity {
		return ErrQuantityBelowHeldUnits
	}

	delta := quantity - r.Quantity
	r.Quantity = quantity
	r.AvailableQuantity = clamp(r.AvailableQuantity+delta, 0, max(0, quantity-r.HeldQuantity))
	r.refreshStatus()

	return nil
}

// WriteOffUnit removes a unit that is out on loan from the collection.
func (r *InventoryRecord) WriteOffUnit() {
	r.Quantity = max(0, r.Quantity-1)
	r.AvailableQuantity = clamp(r.AvailableQuantity, 0, max(0, r.Quantity-r.HeldQuantity))
	r.refreshStatus()
}

// SetAdministrativeHold sets maintenance or lost, or clears the hold when status is empty.
func (r *InventoryRecord) SetAdministrativeHold(status string) error {
	switch status {
	case "", StatusMaintenance, StatusLost:
	default:
		return ErrUnknownAdministrativeHold
	}

	r.AdministrativeHold = status
	r.refreshStatus()

	return nil
}

// IsAvailable reports whether a unit can be lent right now.
func (r InventoryRecord) IsAvailable() bool {
	return r.Status == StatusAvailable
}

func (r *InventoryRecord) refreshStatus() {
	switch {
	case r.AdministrativeHold != "":
		r.Status = r.AdministrativeHold
	case r.AvailableQuantity > 0:
		r.Status = StatusAvailable
	case r.HeldQuantity > 0:
		r.Status = StatusReserved
	default:
		r.Status = StatusBorrowed
	}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
