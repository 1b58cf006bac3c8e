package notifyholder

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
	"github.com/iguene/Bibliovirtuelle/notify"
)

// ErrNotificationFailed means the claim was made but the message could not be delivered.
var ErrNotificationFailed = errors.New("notifying reservation holder failed")

// CommandHandler claims, sends and, on failure, releases a holder notification.
type CommandHandler struct {
	eventStore   shell.EventStore
	notifier     notify.Notifier
	policy       core.Policy
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithPolicy replaces core.DefaultPolicy.
func WithPolicy(policy core.Policy) Option {
	return func(h *CommandHandler) {
		h.policy = policy
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(eventStore shell.EventStore, notifier notify.Notifier, opts ...Option) CommandHandler {
	handler := CommandHandler{
		eventStore: eventStore,
		notifier:   notifier,
		policy:     core.DefaultPolicy(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle claims the notification, sends it, and releases the claim if sending fails.
// The result is idempotent when there was nothing to send.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	bookID, err := shell.BookOfReservation(ctx, h.eventStore, command.ReservationID.String())
	if err != nil {
		return shell.HandlerResult{}, err
	}

	filter := shell.BookStreamFilter(bookID)
	causationID := uuid.New()

	var claimed core.Reservation

	claim, err := shell.HandleWithRetry(ctx, func(retryCtx context.Context) (shell.Outcome, error) {
		return shell.QueryDecideAppend(retryCtx, h.eventStore, filter, func(history core.DomainEvents) core.DecisionResult {
			result, reservation := DecideClaim(history, command, h.policy)
			claimed = reservation

			return result
		}, causationID)
	}, h.retryOptions...)
	if err != nil || claim.Idempotent {
		return claim, err
	}

	notifyErr := h.notifier.NotifyReservationReady(ctx, messageFor(claimed, command))
	if notifyErr == nil {
		return claim, nil
	}

	release, err := shell.HandleWithRetry(ctx, func(retryCtx context.Context) (shell.Outcome, error) {
		return shell.QueryDecideAppend(retryCtx, h.eventStore, filter, func(history core.DomainEvents) core.DecisionResult {
			return DecideFailure(history, command, notifyErr.Error(), h.policy)
		}, causationID)
	}, h.retryOptions...)

	release.Events = append(claim.Events, release.Events...)

	return release, errors.Join(ErrNotificationFailed, notifyErr, err)
}

func messageFor(reservation core.Reservation, command Command) notify.ReservationReady {
	message := notify.ReservationReady{
		ReservationID: reservation.ID,
		BookID:        reservation.BookID,
		BorrowerID:    reservation.BorrowerID,
		NotifiedAt:    command.OccurredAt,
	}

	if reservation.HoldUntil != nil {
		message.HoldUntil = *reservation.HoldUntil
	}

	return message
}
