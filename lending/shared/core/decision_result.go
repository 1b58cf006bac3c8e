package core

// DecisionResult represents the outcome of a business decision in a Decide function.
//
// DecisionResult should only be constructed using the provided factory methods:
// IdempotentDecision(corrections), SuccessDecision(events...), or ErrorDecision(err).
//
// Unlike a failed decision, an idempotent one may still carry lazy corrections worth appending.
// A failed decision never carries events: nothing is appended when a rule is violated.
type DecisionResult struct {
	Outcome string // "idempotent", "success", or "error"
	Events  DomainEvents
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change was requested.
func IdempotentDecision(corrections DomainEvents) DecisionResult {
	return DecisionResult{
		Outcome: idempotentOutcome,
		Events:  corrections,
	}
}

// SuccessDecision creates a DecisionResult with the events to append, in order.
func SuccessDecision(events ...DomainEvent) DecisionResult {
	return DecisionResult{
		Outcome: successOutcome,
		Events:  events,
	}
}

// ErrorDecision creates a DecisionResult indicating a business rule violation.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{
		Outcome: errorOutcome,
		Err:     err,
	}
}

// HasEventsToAppend returns true if there are events to append to the event store.
func (r DecisionResult) HasEventsToAppend() bool {
	return len(r.Events) > 0
}

// IsIdempotent reports whether the requested change had already happened.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}

// SimulatedDecision tries events on a copy of corrected, the state reached by applying corrections.
// If an event contradicts the state the decision fails with that error and nothing is to be appended.
// Otherwise the corrections come first, followed by events.
func SimulatedDecision(corrected BookState, corrections DomainEvents, events ...DomainEvent) DecisionResult {
	simulated := corrected.Clone()
	if err := simulated.ApplyAll(events); err != nil {
		return ErrorDecision(err)
	}

	all := make(DomainEvents, 0, len(corrections)+len(events))
	all = append(all, corrections...)
	all = append(all, events...)

	return SuccessDecision(all...)
}
