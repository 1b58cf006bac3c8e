// Package applycorrections writes the lazy corrections that are due for a book: overdue loans,
// expired reservations and lapsed holds. Reads compute the same corrections without writing them;
// the sweeper uses this command so that the stored state catches up.
package applycorrections
