// Package sweeper persists due lazy corrections and dispatches reservation-ready notifications in the background.
//
// Reads already see corrected state without it; the sweeper makes the corrections durable
// and makes sure holders hear about their unit even when nobody touches the book.
package sweeper
