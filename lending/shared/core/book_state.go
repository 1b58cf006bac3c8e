package core

import (
	"fmt"
	"slices"
	"sort"
)

// BookState is the projection of one book's event stream: its inventory record, loans and reservations.
// Loans and Reservations are kept in event order.
type BookState struct {
	BookID       BookIDString
	Registered   bool
	Inventory    InventoryRecord
	Loans        []Loan
	Reservations []Reservation
}

// ProjectBookState replays history. Events of other books are skipped, so a history that also
// contains a borrower's loans on other books can be passed as-is.
func ProjectBookState(bookID BookIDString, history DomainEvents) (BookState, error) {
	s := BookState{BookID: bookID}

	for _, event := range history {
		if event.ForBook() != bookID {
			continue
		}

		if err := s.Apply(event); err != nil {
			return BookState{}, err
		}
	}

	return s, nil
}

// ProjectBookStates replays a history spanning several books, one state per book in order of first appearance.
func ProjectBookStates(history DomainEvents) ([]BookState, error) {
	order := make([]BookIDString, 0)
	streams := make(map[BookIDString]DomainEvents)

	for _, event := range history {
		bookID := event.ForBook()
		if _, ok := streams[bookID]; !ok {
			order = append(order, bookID)
		}

		streams[bookID] = append(streams[bookID], event)
	}

	states := make([]BookState, 0, len(order))
	for _, bookID := range order {
		s, err := ProjectBookState(bookID, streams[bookID])
		if err != nil {
			return nil, err
		}

		states = append(states, s)
	}

	return states, nil
}

// Apply evolves the state by one event. It fails when the event contradicts the state,
// which is how decisions detect invariant violations before anything is appended.
func (s *BookState) Apply(event DomainEvent) error { //nolint:gocognit,gocyclo // one case per event type
	switch e := event.(type) {
	case BookRegistered:
		if s.Registered {
			return ErrBookAlreadyRegistered
		}

		s.Registered = true
		s.Inventory = NewInventoryRecord(e.BookID, e.Quantity)

	case BookQuantityAdjusted:
		return s.Inventory.AdjustQuantity(e.Quantity)

	case BookAdministrativeStatusChanged:
		return s.Inventory.SetAdministrativeHold(e.Status)

	case BookLentToBorrower:
		return s.applyLent(e)

	case LoanMarkedOverdue:
		return s.updateLoan(e.LoanID, func(l *Loan) error {
			if l.Status != LoanActive {
				return fmt.Errorf("marking loan %s overdue: %w", l.ID, ErrLoanNotOutstanding)
			}

			l.Status = LoanOverdue

			return nil
		})

	case BookReturnedByBorrower:
		return s.updateLoan(e.LoanID, func(l *Loan) error {
			if !l.IsOutstanding() {
				return ErrLoanNotOutstanding
			}

			if err := s.Inventory.ReleaseUnit(); err != nil {
				return err
			}

			returnDate := e.ReturnDate
			l.Status = LoanReturned
			l.ReturnDate = &returnDate
			l.FineAmount = e.FineAmount

			return nil
		})

	case LoanDeclaredLost:
		return s.updateLoan(e.LoanID, func(l *Loan) error {
			if !l.IsOutstanding() {
				return ErrLoanNotOutstanding
			}

			s.Inventory.WriteOffUnit()
			l.Status = LoanLost
			l.FineAmount = e.FineAmount

			return nil
		})

	case BookReserved:
		s.Reservations = append(s.Reservations, Reservation{
			ID:              e.ReservationID,
			BookID:          e.BookID,
			BorrowerID:      e.BorrowerID,
			ReservationDate: e.ReservationDate,
			ExpiryDate:      e.ExpiryDate,
			Status:          ReservationStatusActive,
		})

	case ReservationFulfilled:
		return s.updateReservation(e.ReservationID, func(r *Reservation) error {
			if !r.IsActive() {
				return ErrReservationNotActive
			}

			if err := s.Inventory.HoldUnit(); err != nil {
				return err
			}

			holdUntil := e.HoldUntil
			r.Status = ReservationStatusFulfilled
			r.HoldUntil = &holdUntil
			r.HoldActive = true
			r.Notified = false

			return nil
		})

	case ReservationExpired:
		return s.updateReservation(e.ReservationID, func(r *Reservation) error {
			if !r.IsActive() {
				return ErrReservationNotActive
			}

			r.Status = ReservationStatusExpired

			return nil
		})

	case ReservationCancelled:
		return s.updateReservation(e.ReservationID, func(r *Reservation) error {
			if !r.IsActive() {
				return ErrReservationNotActive
			}

			r.Status = ReservationStatusCancelled

			return nil
		})

	case ReservationHoldLapsed:
		return s.updateReservation(e.ReservationID, func(r *Reservation) error {
			if !r.HoldActive {
				return fmt.Errorf("lapsing hold of reservation %s: %w", r.ID, ErrReservationNotActive)
			}

			if err := s.Inventory.ReleaseHeldUnit(); err != nil {
				return err
			}

			r.HoldActive = false
			r.HoldLapsed = true

			return nil
		})

	case ReservationHolderNotified:
		return s.updateReservation(e.ReservationID, func(r *Reservation) error {
			r.Notified = true
			return nil
		})

	case ReservationNotificationFailed:
		return s.updateReservation(e.ReservationID, func(r *Reservation) error {
			r.Notified = false
			r.FailedNotices++

			return nil
		})
	}

	return nil
}

// ApplyAll applies events in order and stops at the first failure.
func (s *BookState) ApplyAll(events DomainEvents) error {
	for _, event := range events {
		if err := s.Apply(event); err != nil {
			return err
		}
	}

	return nil
}

func (s *BookState) applyLent(e BookLentToBorrower) error {
	if e.FromHold {
		if err := s.Inventory.ConsumeHeldUnit(); err != nil {
			return err
		}
	} else if err := s.Inventory.TryReserveUnit(); err != nil {
		return err
	}

	s.Loans = append(s.Loans, Loan{
		ID:            e.LoanID,
		BookID:        e.BookID,
		BorrowerID:    e.BorrowerID,
		BorrowDate:    e.BorrowDate,
		DueDate:       e.DueDate,
		Status:        LoanActive,
		ReservationID: e.ReservationID,
	})

	if e.ReservationID == "" {
		return nil
	}

	return s.updateReservation(e.ReservationID, func(r *Reservation) error {
		if e.FromHold {
			r.HoldActive = false
			return nil
		}

		if !r.IsActive() {
			return ErrReservationNotActive
		}

		r.Status = ReservationStatusFulfilled

		return nil
	})
}

func (s *BookState) updateLoan(id LoanIDString, update func(*Loan) error) error {
	for i := range s.Loans {
		if s.Loans[i].ID == id {
			return update(&s.Loans[i])
		}
	}

	return ErrLoanNotFound
}

func (s *BookState) updateReservation(id ReservationIDString, update func(*Reservation) error) error {
	for i := range s.Reservations {
		if s.Reservations[i].ID == id {
			return update(&s.Reservations[i])
		}
	}

	return ErrReservationNotFound
}

// Clone returns a deep copy, so that decisions can try events without touching the original.
func (s BookState) Clone() BookState {
	c := s
	c.Loans = slices.Clone(s.Loans)
	c.Reservations = slices.Clone(s.Reservations)

	return c
}

// Loan returns the loan with id.
func (s BookState) Loan(id LoanIDString) (Loan, bool) {
	for _, l := range s.Loans {
		if l.ID == id {
			return l, true
		}
	}

	return Loan{}, false
}

// Reservation returns the reservation with id.
func (s BookState) Reservation(id ReservationIDString) (Reservation, bool) {
	for _, r := range s.Reservations {
		if r.ID == id {
			return r, true
		}
	}

	return Reservation{}, false
}

// ActiveReservationOf returns the borrower's queued reservation, if any.
func (s BookState) ActiveReservationOf(borrowerID BorrowerIDString) (Reservation, bool) {
	for _, r := range s.Reservations {
		if r.BorrowerID == borrowerID && r.IsActive() {
			return r, true
		}
	}

	return Reservation{}, false
}

// ActiveHoldOf returns the borrower's fulfilled reservation that still holds a unit, if any.
func (s BookState) ActiveHoldOf(borrowerID BorrowerIDString) (Reservation, bool) {
	for _, r := range s.Reservations {
		if r.BorrowerID == borrowerID && r.HoldActive {
			return r, true
		}
	}

	return Reservation{}, false
}

// NextQueuedReservation returns the oldest queued reservation, ties broken by event order.
func (s BookState) NextQueuedReservation() (Reservation, bool) {
	queued := make([]Reservation, 0)
	for _, r := range s.Reservations {
		if r.IsActive() {
			queued = append(queued, r)
		}
	}

	if len(queued) == 0 {
		return Reservation{}, false
	}

	sort.SliceStable(queued, func(i, j int) bool {
		return queued[i].ReservationDate.Before(queued[j].ReservationDate)
	})

	return queued[0], true
}

// OutstandingLoans returns the loans that still hold a unit.
func (s BookState) OutstandingLoans() []Loan {
	outstanding := make([]Loan, 0)
	for _, l := range s.Loans {
		if l.IsOutstanding() {
			outstanding = append(outstanding, l)
		}
	}

	return outstanding
}

// QueuedReservations returns the number of queued reservations.
func (s BookState) QueuedReservations() int {
	n := 0
	for _, r := range s.Reservations {
		if r.IsActive() {
			n++
		}
	}

	return n
}
