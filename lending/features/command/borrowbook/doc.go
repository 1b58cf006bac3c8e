// Package borrowbook implements the Borrow use case.
//
// A borrower takes one unit of a book. A unit held for the borrower's fulfilled reservation is used first,
// otherwise a unit is taken from the available pool. The loan is due LoanPeriod after today.
//
// The consistency boundary is the book's stream plus the loan events of the borrower, so that the loan
// limit holds even when the same borrower borrows different books concurrently.
package borrowbook
