// Package notifyholder tells the holder of a fulfilled reservation that a unit is set aside for them.
//
// The notification is claimed before it is sent by appending ReservationHolderNotified on the book's stream.
// Two dispatchers racing for the same reservation conflict on that append, and the loser finds it already
// claimed, so a holder is notified at most once per claim. If publishing fails, ReservationNotificationFailed
// releases the claim and a later run tries again.
package notifyholder
