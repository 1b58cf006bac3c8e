// Package reservationlist implements the Reservation List query: reservations across books, newest first,
// as they stand after the lazy corrections due at an instant (expiries and lapsed holds).
// It can be narrowed to one book, one borrower and one status.
package reservationlist
