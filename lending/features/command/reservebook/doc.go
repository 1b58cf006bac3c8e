// Package reservebook implements the Reserve use case.
//
// A borrower joins the queue of a book. The reservation expires ReservationTTL after it was made unless it is
// fulfilled first. Reserving does not touch the counters.
package reservebook
