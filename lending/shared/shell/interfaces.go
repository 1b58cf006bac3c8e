package shell

import (
	"context"

	"github.com/iguene/Bibliovirtuelle/eventstore"
)

// QueriesEvents is the read side of the event store.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// AppendsEvents is the write side of the event store.
type AppendsEvents interface {
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// EventStore is what command handlers need: query a dynamic stream, then append to it guarded by its max sequence number.
// Both engines satisfy it.
type EventStore interface {
	QueriesEvents
	AppendsEvents
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler processes commands: query, unmarshal, decide, append.
// Implementations carry no observability; see observable.CommandWrapper.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// QueryResult is a projection. GetSequenceNumber returns the highest sequence number it includes.
type QueryResult interface {
	GetSequenceNumber() uint
}

// CoreQueryHandler processes queries: query, unmarshal, project.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
