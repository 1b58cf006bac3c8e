package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

var (
	// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
	ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

	// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
	ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")
)

type decodeFunc func(payloadJSON []byte) (core.DomainEvent, error)

var decoders = map[string]decodeFunc{
	core.BookRegisteredEventType:                  decode[core.BookRegistered],
	core.BookQuantityAdjustedEventType:            decode[core.BookQuantityAdjusted],
	core.BookAdministrativeStatusChangedEventType: decode[core.BookAdministrativeStatusChanged],
	core.BookLentToBorrowerEventType:              decode[core.BookLentToBorrower],
	core.LoanMarkedOverdueEventType:               decode[core.LoanMarkedOverdue],
	core.BookReturnedByBorrowerEventType:          decode[core.BookReturnedByBorrower],
	core.LoanDeclaredLostEventType:                decode[core.LoanDeclaredLost],
	core.BookReservedEventType:                    decode[core.BookReserved],
	core.ReservationFulfilledEventType:            decode[core.ReservationFulfilled],
	core.ReservationExpiredEventType:              decode[core.ReservationExpired],
	core.ReservationCancelledEventType:            decode[core.ReservationCancelled],
	core.ReservationHoldLapsedEventType:           decode[core.ReservationHoldLapsed],
	core.ReservationHolderNotifiedEventType:       decode[core.ReservationHolderNotified],
	core.ReservationNotificationFailedEventType:   decode[core.ReservationNotificationFailed],
	core.BookReviewedEventType:                    decode[core.BookReviewed],
}

// DomainEventsFrom converts multiple StorableEvents to DomainEvents.
func DomainEventsFrom(storableEvents eventstore.StorableEvents) (core.DomainEvents, error) {
	domainEvents := make(core.DomainEvents, 0, len(storableEvents))

	for _, storableEvent := range storableEvents {
		domainEvent, err := DomainEventFrom(storableEvent)
		if err != nil {
			return nil, err
		}

		domainEvents = append(domainEvents, domainEvent)
	}

	return domainEvents, nil
}

// DomainEventFrom converts a StorableEvent to its corresponding DomainEvent.
func DomainEventFrom(storableEvent eventstore.StorableEvent) (core.DomainEvent, error) {
	decodeFn, ok := decoders[storableEvent.EventType]
	if !ok {
		return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
	}

	return decodeFn(storableEvent.PayloadJSON)
}

func decode[E core.DomainEvent](payloadJSON []byte) (core.DomainEvent, error) {
	var event E

	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return event, nil
}
