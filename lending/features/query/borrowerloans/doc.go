// Package borrowerloans implements the Borrower Loans query: every loan of a borrower on any book,
// each with its overdue view as of an instant, plus the total fine accrued on outstanding loans.
package borrowerloans
