// Package pendingwork implements the Pending Work query used by the sweeper.
//
// It scans every book and reports the ones with lazy corrections due at AsOf,
// and the fulfilled reservations whose holders have not been notified yet.
package pendingwork
