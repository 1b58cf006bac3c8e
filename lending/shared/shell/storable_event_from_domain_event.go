package shell

import (
	"context"
	"errors"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

var (
	// ErrMappingToStorableEventFailedForDomainEvent is returned when domain event serialization fails
	ErrMappingToStorableEventFailedForDomainEvent = errors.New("mapping to storable event failed for domain event")

	// ErrMappingToStorableEventFailedForMetadata is returned when metadata serialization fails
	ErrMappingToStorableEventFailedForMetadata = errors.New("mapping to storable event failed for metadata")
)

// StorableEventFrom converts a DomainEvent and EventMetadata to a StorableEvent
func StorableEventFrom(event core.DomainEvent, metadata EventMetadata) (eventstore.StorableEvent, error) {
	payloadJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(event)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	metadataJSON, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(metadata)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForMetadata, err)
	}

	storableEvent, err := eventstore.BuildStorableEvent(event.EventType(), event.HasOccurredAt(), payloadJSON, metadataJSON)
	if err != nil {
		return eventstore.StorableEvent{}, errors.Join(ErrMappingToStorableEventFailedForDomainEvent, err)
	}

	return storableEvent, nil
}

// AppendEvents appends events in one atomic write guarded by filter and expectedMaxSequenceNumber.
// Each event gets its own message id; all share causationID and the correlation id of ctx.
func AppendEvents(
	ctx context.Context,
	appender AppendsEvents,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	events core.DomainEvents,
	causationID uuid.UUID,
) error {

	if len(events) == 0 {
		return eventstore.ErrEmptyEventsToAppend
	}

	correlationID := CorrelationIDFrom(ctx, causationID)

	storableEvents := make(eventstore.StorableEvents, 0, len(events))
	for _, event := range events {
		storableEvent, err := StorableEventFrom(event, BuildEventMetadata(uuid.New(), causationID, correlationID))
		if err != nil {
			return err
		}

		storableEvents = append(storableEvents, storableEvent)
	}

	return appender.Append(ctx, filter, expectedMaxSequenceNumber, storableEvents[0], storableEvents[1:]...)
}
