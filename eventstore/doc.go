// Package eventstore provides the storage-agnostic building blocks of an event store
// with dynamic event streams.
//
// A "dynamic event stream" is not a physical stream: it is the set of events selected
// by a Filter. Writers query a stream, take a decision on its current state and append
// new events guarded by the max sequence number they observed. If any other writer
// appended an event matching the same Filter in the meantime, Append fails with
// ErrConcurrencyConflict and nothing is written.
//
// Engines:
//   - postgresengine: PostgreSQL via pgx, database/sql or sqlx
//   - memengine: in-process, for tests and local development
//
// Common usage pattern:
//
//	filter := eventstore.BuildEventFilter().
//		Matching().
//		AnyEventTypeOf(
//			core.BookLentToBorrowerEventType,
//			core.BookReturnedByBorrowerEventType).
//		AndAnyPredicateOf(eventstore.P("BookID", bookID.String())).
//		Finalize()
//
//	events, maxSeq, err := store.Query(ctx, filter)
//	if err != nil {
//		// handle error
//	}
//
//	newEvent, err := eventstore.BuildStorableEvent(eventType, occurredAt, payload, metadata)
//	err = store.Append(ctx, filter, maxSeq, newEvent)
package eventstore
