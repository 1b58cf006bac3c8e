// Package declareloanlost implements the Declare Loan Lost use case.
//
// An administrator writes off a loan whose unit will not come back. The loan ends in status lost with the
// fine accrued up to today, and the unit leaves the collection.
package declareloanlost
