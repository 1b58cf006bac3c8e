// Package loanview implements the Loan query: one loan with its overdue view as of an instant.
//
// Lazy corrections are applied to the returned view but never written.
package loanview
