// Package loanlist implements the Loan List query: the loans of all books, newest first,
// narrowed by book, borrower and status. An active loan past its due date counts as overdue.
package loanlist
