package coordinator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/features/query/bookreviews"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/borrowerloans"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/inventoryview"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/loanlist"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/loanview"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/pendingwork"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/reservationlist"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// Reads apply the lazy corrections due at asOf to the returned view and write nothing.

// Loan returns a loan with its overdue view.
func (c *Coordinator) Loan(ctx context.Context, loanID uuid.UUID, asOf time.Time) (loanview.LoanView, error) {
	return c.loanView.Handle(ctx, loanview.BuildQuery(loanID, asOf))
}

// Inventory returns the counters of a book.
func (c *Coordinator) Inventory(ctx context.Context, bookID uuid.UUID, asOf time.Time) (core.InventoryRecord, error) {
	view, err := c.InventoryView(ctx, bookID, asOf)
	if err != nil {
		return core.InventoryRecord{}, err
	}

	return view.Inventory, nil
}

// InventoryView returns the counters of a book together with its loan and queue sizes.
func (c *Coordinator) InventoryView(ctx context.Context, bookID uuid.UUID, asOf time.Time) (inventoryview.InventoryView, error) {
	return c.inventoryView.Handle(ctx, inventoryview.BuildQuery(bookID, asOf))
}

// BorrowerLoans lists all loans of a borrower.
func (c *Coordinator) BorrowerLoans(ctx context.Context, borrowerID uuid.UUID, asOf time.Time) (borrowerloans.BorrowerLoans, error) {
	return c.borrowerLoans.Handle(ctx, borrowerloans.BuildQuery(borrowerID, asOf))
}

// Loans lists loans newest first, narrowed by book, borrower and status. uuid.Nil and "" match any.
func (c *Coordinator) Loans(
	ctx context.Context,
	bookID, borrowerID uuid.UUID,
	status string,
	asOf time.Time,
) (loanlist.LoanList, error) {

	return c.loanList.Handle(ctx, loanlist.BuildQuery(bookID, borrowerID, status, asOf))
}

// Reservations lists reservations newest first, narrowed by book, borrower and status. uuid.Nil and "" match any.
func (c *Coordinator) Reservations(
	ctx context.Context,
	bookID, borrowerID uuid.UUID,
	status string,
	asOf time.Time,
) (reservationlist.ReservationList, error) {

	return c.reservationList.Handle(ctx, reservationlist.BuildQuery(bookID, borrowerID, status, asOf))
}

// Reviews lists the reviews of a book, or of all books for uuid.Nil.
func (c *Coordinator) Reviews(ctx context.Context, bookID uuid.UUID) (bookreviews.BookReviews, error) {
	return c.bookReviews.Handle(ctx, bookreviews.BuildQuery(bookID))
}

// PendingWork lists the books with corrections due and the holders waiting for a notification.
func (c *Coordinator) PendingWork(ctx context.Context) (pendingwork.PendingWork, error) {
	return c.pendingWork.Handle(ctx, pendingwork.BuildQuery(c.clock.Now()))
}

// Reservation returns a reservation.
func (c *Coordinator) Reservation(ctx context.Context, reservationID uuid.UUID, asOf time.Time) (core.Reservation, error) {
	bookID, err := shell.BookOfReservation(ctx, c.eventStore, reservationID.String())
	if err != nil {
		return core.Reservation{}, err
	}

	s, _, err := shell.LoadBookState(ctx, c.eventStore, bookID)
	if err != nil {
		return core.Reservation{}, err
	}

	corrected, _, err := core.Correct(s, asOf, c.policy)
	if err != nil {
		return core.Reservation{}, err
	}

	reservation, ok := corrected.Reservation(reservationID.String())
	if !ok {
		return core.Reservation{}, core.ErrReservationNotFound
	}

	return reservation, nil
}
