// Package setadministrativestatus implements the Set Administrative Status use case.
//
// An administrator takes a book out of circulation (maintenance or lost) or puts it back.
// While a hold is set nothing can be lent and no reservation is fulfilled, whatever the counters say.
package setadministrativestatus
