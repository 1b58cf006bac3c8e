// Package returnloan implements the Return Loan use case.
//
// The borrower (or an administrator) returns a loan. The fine accrued up to today is stamped on the loan
// and its unit is released. If the book has queued reservations, the freed unit is set aside for the
// oldest one right away.
//
// A release that would push the book above its owned quantity fails with core.ErrOverRelease and nothing is written.
package returnloan
