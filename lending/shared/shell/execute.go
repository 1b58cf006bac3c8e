package shell

import (
	"context"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// DecideFunc is the pure part of a command: history in, decision out.
type DecideFunc func(history core.DomainEvents) core.DecisionResult

// QueryDecideAppend runs one attempt of a command against the dynamic stream selected by filter:
// Query -> Unmarshal -> Decide -> Append. The append is guarded by the max sequence number seen by the query,
// so a concurrent writer on the same stream makes it fail with eventstore.ErrConcurrencyConflict.
func QueryDecideAppend(
	ctx context.Context,
	store EventStore,
	filter eventstore.Filter,
	decide DecideFunc,
	causationID uuid.UUID,
) (Outcome, error) {

	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := store.Query(ctx, filter)
	if err != nil {
		return Outcome{}, err
	}

	history, err := DomainEventsFrom(storableEvents)
	if err != nil {
		return Outcome{}, err
	}

	result := decide(history)
	if decisionErr := result.HasError(); decisionErr != nil {
		return Outcome{}, decisionErr
	}

	if result.HasEventsToAppend() {
		if appendErr := AppendEvents(ctx, store, filter, maxSequenceNumber, result.Events, causationID); appendErr != nil {
			return Outcome{}, appendErr
		}
	}

	return Outcome{Idempotent: result.IsIdempotent(), Events: result.Events}, nil
}
