package core

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a decision wraps exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrNotAvailable = errors.New("not available")
	ErrOverRelease  = errors.New("over-release")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrBookNotFound        = fmt.Errorf("book is not registered: %w", ErrNotFound)
	ErrLoanNotFound        = fmt.Errorf("loan does not exist: %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reservation does not exist: %w", ErrNotFound)

	ErrNoUnitAvailable  = fmt.Errorf("no unit of the book is available: %w", ErrNotAvailable)
	ErrLoanLimitReached = fmt.Errorf("borrower has reached the loan limit: %w", ErrNotAvailable)

	ErrReleaseExceedsQuantity = fmt.Errorf("release would exceed the owned quantity: %w", ErrOverRelease)

	ErrBookAlreadyRegistered = fmt.Errorf("book is already registered: %w", ErrConflict)
	ErrDuplicateReservation  = fmt.Errorf("borrower already has an active reservation for the book: %w", ErrConflict)
	ErrReservationNotActive  = fmt.Errorf("reservation is not active: %w", ErrConflict)
	ErrLoanNotOutstanding    = fmt.Errorf("loan is not outstanding: %w", ErrConflict)
	ErrLoanIDTaken           = fmt.Errorf("loan id belongs to another book or borrower: %w", ErrConflict)
	ErrReservationIDTaken    = fmt.Errorf("reservation id belongs to another book or borrower: %w", ErrConflict)
	ErrAlreadyReviewed       = fmt.Errorf("reviewer has already reviewed the book: %w", ErrConflict)

	ErrActorNotPermitted = fmt.Errorf("actor is neither the owner nor an admin: %w", ErrForbidden)

	ErrNegativeQuantity          = fmt.Errorf("quantity must not be negative: %w", ErrInvalidInput)
	ErrQuantityBelowHeldUnits    = fmt.Errorf("quantity is below the units held for reservations: %w", ErrInvalidInput)
	ErrUnknownAdministrativeHold = fmt.Errorf("unknown administrative status: %w", ErrInvalidInput)
	ErrRatingOutOfRange          = fmt.Errorf("rating must be between 1 and 5: %w", ErrInvalidInput)
	ErrUnknownStatusFilter       = fmt.Errorf("unknown status filter: %w", ErrInvalidInput)
)

// Kind returns the error kind err wraps, or nil for errors outside the domain.
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrNotAvailable, ErrOverRelease, ErrConflict, ErrForbidden, ErrInvalidInput} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	return nil
}
