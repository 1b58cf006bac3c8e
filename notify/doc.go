// Package notify tells holders of fulfilled reservations that a unit is waiting for them.
//
// RabbitPublisher publishes to a topic exchange; LogNotifier only logs and is used when no broker is configured.
package notify
