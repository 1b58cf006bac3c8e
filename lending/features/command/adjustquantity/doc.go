// Package adjustquantity implements the Adjust Quantity use case.
//
// An administrator sets the number of units the library owns. AvailableQuantity moves by the same delta,
// clamped so the counters stay consistent. Units that become available go to queued reservations first.
package adjustquantity
