// Package cancelreservation implements the Cancel Reservation use case.
//
// The holder of a queued reservation, or an administrator, takes it out of the queue.
package cancelreservation
