package coordinator_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/eventstore/memengine"
	"github.com/iguene/Bibliovirtuelle/lending/coordinator"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

type CoordinatorSuite struct {
	suite.Suite

	ctx         context.Context
	clock       *shell.ManualClock
	store       *memengine.EventStore
	coordinator *coordinator.Coordinator
	admin       core.Actor
}

func Test_Coordinator(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = shell.NewManualClock(time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC))
	s.store = memengine.NewEventStore()
	s.coordinator = coordinator.New(s.store,
		coordinator.WithClock(s.clock),
		coordinator.WithRetryOptions(
			shell.WithMaxAttempts(12),
			shell.WithBaseDelay(time.Millisecond),
			shell.WithJitterFactor(1.0),
		),
	)
	s.admin = core.Actor{ID: uuid.NewString(), Admin: true}
}

func (s *CoordinatorSuite) givenBook(quantity int) uuid.UUID {
	bookID := uuid.New()
	_, err := s.coordinator.RegisterBook(s.ctx, bookID, quantity)
	s.Require().NoError(err)

	return bookID
}

func (s *CoordinatorSuite) inventory(bookID uuid.UUID) core.InventoryRecord {
	record, err := s.coordinator.Inventory(s.ctx, bookID, s.clock.Now())
	s.Require().NoError(err)

	return record
}

func borrower(id uuid.UUID) core.Actor {
	return core.Actor{ID: id.String()}
}

func (s *CoordinatorSuite) Test_ConcurrentBorrowsNeverOversubscribe() {
	// arrange
	const units, borrowers = 3, 10
	bookID := s.givenBook(units)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)

	// act
	for range borrowers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := s.coordinator.Borrow(s.ctx, bookID, uuid.New())

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				succeeded++
				return
			}

			failures = append(failures, err)
		}()
	}

	wg.Wait()

	// assert
	// A conflict means another borrow was appended, so no borrower sees more than `units` conflicts
	// and the retry budget of the suite is never exhausted.
	s.Equal(units, succeeded)
	s.Len(failures, borrowers-units)

	for _, err := range failures {
		s.ErrorIs(err, core.ErrNotAvailable)
	}

	record := s.inventory(bookID)
	s.Equal(units-succeeded, record.AvailableQuantity)
	s.GreaterOrEqual(record.AvailableQuantity, 0)

	view, err := s.coordinator.InventoryView(s.ctx, bookID, s.clock.Now())
	s.Require().NoError(err)
	s.Equal(succeeded, view.OutstandingLoans)
}

func (s *CoordinatorSuite) Test_BorrowThenReturnRestoresTheBook() {
	// arrange
	bookID := s.givenBook(2)
	before := s.inventory(bookID)
	borrowerID := uuid.New()

	// act
	loan, err := s.coordinator.Borrow(s.ctx, bookID, borrowerID)
	s.Require().NoError(err)

	returned, err := s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), borrower(borrowerID))

	// assert
	s.Require().NoError(err)
	s.Equal(core.LoanReturned, returned.Status)
	s.True(returned.FineAmount.IsZero())
	s.Equal(before.AvailableQuantity, s.inventory(bookID).AvailableQuantity)
	s.Equal(before.Status, s.inventory(bookID).Status)
}

func (s *CoordinatorSuite) Test_BorrowSetsTheDueDate() {
	// arrange
	bookID := s.givenBook(1)

	// act
	loan, err := s.coordinator.Borrow(s.ctx, bookID, uuid.New())

	// assert
	s.Require().NoError(err)
	s.Equal(core.LoanActive, loan.Status)
	s.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), loan.BorrowDate)
	s.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), loan.DueDate)
	s.Equal(core.StatusBorrowed, s.inventory(bookID).Status)
}

func (s *CoordinatorSuite) Test_BorrowUnknownBook() {
	// act
	_, err := s.coordinator.Borrow(s.ctx, uuid.New(), uuid.New())

	// assert
	s.ErrorIs(err, core.ErrNotFound)
}

func (s *CoordinatorSuite) Test_ReturnAfterQuantityReductionFailsWithOverRelease() {
	// arrange
	bookID := s.givenBook(1)
	borrowerID := uuid.New()
	loan, err := s.coordinator.Borrow(s.ctx, bookID, borrowerID)
	s.Require().NoError(err)

	_, err = s.coordinator.AdjustQuantity(s.ctx, bookID, 0)
	s.Require().NoError(err)

	// act
	_, err = s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), borrower(borrowerID))

	// assert
	s.ErrorIs(err, core.ErrOverRelease)

	record := s.inventory(bookID)
	s.Equal(0, record.Quantity)
	s.Equal(0, record.AvailableQuantity)

	view, err := s.coordinator.Loan(s.ctx, uuid.MustParse(loan.ID), s.clock.Now())
	s.Require().NoError(err)
	s.Equal(core.LoanActive, view.Loan.Status)
}

func (s *CoordinatorSuite) Test_LateReturnIsFined() {
	// arrange
	s.clock.Set(time.Date(2023, 12, 2, 15, 0, 0, 0, time.UTC))
	bookID := s.givenBook(1)
	borrowerID := uuid.New()
	loan, err := s.coordinator.Borrow(s.ctx, bookID, borrowerID)
	s.Require().NoError(err)
	s.Require().Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), loan.DueDate)

	s.clock.Set(time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC))

	// act
	returned, err := s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), borrower(borrowerID))

	// assert
	s.Require().NoError(err)
	s.Equal("5.00", returned.FineAmount.StringFixed(2))
	s.Equal(core.LoanReturned, returned.Status)
}

func (s *CoordinatorSuite) Test_ReturnIsIdempotent() {
	// arrange
	bookID := s.givenBook(1)
	borrowerID := uuid.New()
	loan, err := s.coordinator.Borrow(s.ctx, bookID, borrowerID)
	s.Require().NoError(err)

	first, err := s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), borrower(borrowerID))
	s.Require().NoError(err)

	// act
	second, err := s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), borrower(borrowerID))

	// assert
	s.Require().NoError(err)
	s.Equal(first.ReturnDate, second.ReturnDate)
	s.Equal(1, s.inventory(bookID).AvailableQuantity)
}

func (s *CoordinatorSuite) Test_ReturnByAnotherBorrowerIsForbidden() {
	// arrange
	bookID := s.givenBook(1)
	loan, err := s.coordinator.Borrow(s.ctx, bookID, uuid.New())
	s.Require().NoError(err)

	// act
	_, err = s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), borrower(uuid.New()))

	// assert
	s.ErrorIs(err, core.ErrForbidden)
}

func (s *CoordinatorSuite) Test_ComputeOverdueViewIsPure() {
	// arrange
	loan := core.Loan{ID: uuid.NewString(), DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Status: core.LoanActive}
	asOf := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	// act
	first := s.coordinator.ComputeOverdueView(loan, asOf)
	second := s.coordinator.ComputeOverdueView(loan, asOf)

	// assert
	s.Equal(first, second)
	s.True(first.IsOverdue)
	s.Equal(4, first.DaysOverdue)
	s.Equal(core.LoanActive, loan.Status)
}

func (s *CoordinatorSuite) Test_ReservationIsHonoredOnReturn() {
	// arrange
	bookID := s.givenBook(1)
	userA, userB := uuid.New(), uuid.New()

	loan, err := s.coordinator.Borrow(s.ctx, bookID, userA)
	s.Require().NoError(err)
	s.Equal(0, s.inventory(bookID).AvailableQuantity)
	s.Equal(core.StatusBorrowed, s.inventory(bookID).Status)

	_, err = s.coordinator.Borrow(s.ctx, bookID, userB)
	s.Require().ErrorIs(err, core.ErrNotAvailable)

	reservation, err := s.coordinator.Reserve(s.ctx, bookID, userB)
	s.Require().NoError(err)
	s.Equal(core.ReservationStatusActive, reservation.Status)

	// act
	_, err = s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), borrower(userA))

	// assert
	s.Require().NoError(err)

	fulfilled, err := s.coordinator.Reservation(s.ctx, uuid.MustParse(reservation.ID), s.clock.Now())
	s.Require().NoError(err)
	s.Equal(core.ReservationStatusFulfilled, fulfilled.Status)
	s.True(fulfilled.HoldActive)

	record := s.inventory(bookID)
	s.Equal(0, record.AvailableQuantity)
	s.Equal(1, record.HeldQuantity)
	s.Equal(core.StatusReserved, record.Status)

	_, err = s.coordinator.Borrow(s.ctx, bookID, uuid.New())
	s.ErrorIs(err, core.ErrNotAvailable)

	loanB, err := s.coordinator.Borrow(s.ctx, bookID, userB)
	s.Require().NoError(err)
	s.Equal(reservation.ID, loanB.ReservationID)
	s.Equal(0, s.inventory(bookID).HeldQuantity)
}

func (s *CoordinatorSuite) Test_DuplicateReservationIsAConflict() {
	// arrange
	bookID := s.givenBook(1)
	borrowerID := uuid.New()
	_, err := s.coordinator.Reserve(s.ctx, bookID, borrowerID)
	s.Require().NoError(err)

	// act
	_, err = s.coordinator.Reserve(s.ctx, bookID, borrowerID)

	// assert
	s.ErrorIs(err, core.ErrConflict)
}

func (s *CoordinatorSuite) Test_ExpiredReservationMayBeRenewed() {
	// arrange
	bookID := s.givenBook(1)
	borrowerID := uuid.New()
	first, err := s.coordinator.Reserve(s.ctx, bookID, borrowerID)
	s.Require().NoError(err)

	s.clock.Advance(8 * 24 * time.Hour)

	// act
	second, err := s.coordinator.Reserve(s.ctx, bookID, borrowerID)

	// assert
	s.Require().NoError(err)
	s.Equal(core.ReservationStatusActive, second.Status)

	expired, err := s.coordinator.Reservation(s.ctx, uuid.MustParse(first.ID), s.clock.Now())
	s.Require().NoError(err)
	s.Equal(core.ReservationStatusExpired, expired.Status)
}

func (s *CoordinatorSuite) Test_LapsedHoldPassesToTheNextReservation() {
	// arrange
	bookID := s.givenBook(1)
	userA, userB, userC := uuid.New(), uuid.New(), uuid.New()

	loan, err := s.coordinator.Borrow(s.ctx, bookID, userA)
	s.Require().NoError(err)

	first, err := s.coordinator.Reserve(s.ctx, bookID, userB)
	s.Require().NoError(err)

	_, err = s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), borrower(userA))
	s.Require().NoError(err)

	s.clock.Advance(time.Minute)
	second, err := s.coordinator.Reserve(s.ctx, bookID, userC)
	s.Require().NoError(err)

	_, err = s.coordinator.Borrow(s.ctx, bookID, userC)
	s.Require().ErrorIs(err, core.ErrNotAvailable)

	// act
	s.clock.Advance(7*24*time.Hour - 30*time.Second)

	// assert
	lapsed, err := s.coordinator.Reservation(s.ctx, uuid.MustParse(first.ID), s.clock.Now())
	s.Require().NoError(err)
	s.True(lapsed.HoldLapsed)
	s.False(lapsed.HoldActive)

	next, err := s.coordinator.Reservation(s.ctx, uuid.MustParse(second.ID), s.clock.Now())
	s.Require().NoError(err)
	s.Equal(core.ReservationStatusFulfilled, next.Status)
	s.True(next.HoldActive)

	_, err = s.coordinator.Borrow(s.ctx, bookID, userB)
	s.ErrorIs(err, core.ErrNotAvailable)

	_, err = s.coordinator.Borrow(s.ctx, bookID, userC)
	s.NoError(err)
}

func (s *CoordinatorSuite) Test_OverdueIsPersistedOnTheNextWrite() {
	// arrange
	bookID := s.givenBook(2)
	loan, err := s.coordinator.Borrow(s.ctx, bookID, uuid.New())
	s.Require().NoError(err)

	s.clock.Advance(35 * 24 * time.Hour)

	// act
	_, err = s.coordinator.Borrow(s.ctx, bookID, uuid.New())

	// assert
	s.Require().NoError(err)

	storable, _, err := s.store.Query(s.ctx, eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.LoanMarkedOverdueEventType).
		AndAnyPredicateOf(eventstore.P("LoanID", loan.ID)).
		Finalize())
	s.Require().NoError(err)
	s.Len(storable, 1)
}

func (s *CoordinatorSuite) Test_LoanLimit() {
	// arrange
	borrowerID := uuid.New()
	for range core.DefaultPolicy().MaxLoansPerBorrower {
		_, err := s.coordinator.Borrow(s.ctx, s.givenBook(1), borrowerID)
		s.Require().NoError(err)
	}

	// act
	_, err := s.coordinator.Borrow(s.ctx, s.givenBook(1), borrowerID)

	// assert
	s.ErrorIs(err, core.ErrLoanLimitReached)

	loans, err := s.coordinator.BorrowerLoans(s.ctx, borrowerID, s.clock.Now())
	s.Require().NoError(err)
	s.Equal(core.DefaultPolicy().MaxLoansPerBorrower, loans.Outstanding)
}

func (s *CoordinatorSuite) Test_DeclareLoanLost() {
	// arrange
	bookID := s.givenBook(2)
	borrowerID := uuid.New()
	loan, err := s.coordinator.Borrow(s.ctx, bookID, borrowerID)
	s.Require().NoError(err)

	_, err = s.coordinator.DeclareLoanLost(s.ctx, uuid.MustParse(loan.ID), borrower(borrowerID))
	s.Require().ErrorIs(err, core.ErrForbidden)

	// act
	lost, err := s.coordinator.DeclareLoanLost(s.ctx, uuid.MustParse(loan.ID), s.admin)

	// assert
	s.Require().NoError(err)
	s.Equal(core.LoanLost, lost.Status)

	record := s.inventory(bookID)
	s.Equal(1, record.Quantity)
	s.Equal(1, record.AvailableQuantity)

	_, err = s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), borrower(borrowerID))
	s.ErrorIs(err, core.ErrConflict)
}

func (s *CoordinatorSuite) Test_MaintenanceBlocksBorrowing() {
	// arrange
	bookID := s.givenBook(1)
	_, err := s.coordinator.SetAdministrativeStatus(s.ctx, bookID, core.StatusMaintenance)
	s.Require().NoError(err)

	// act
	_, err = s.coordinator.Borrow(s.ctx, bookID, uuid.New())

	// assert
	s.ErrorIs(err, core.ErrNotAvailable)
	s.Equal(core.StatusMaintenance, s.inventory(bookID).Status)
}

func (s *CoordinatorSuite) Test_MaintenanceBlocksTheHolderToo() {
	// arrange
	bookID := s.givenBook(1)
	lender, holder := uuid.New(), uuid.New()

	loan, err := s.coordinator.Borrow(s.ctx, bookID, lender)
	s.Require().NoError(err)
	_, err = s.coordinator.Reserve(s.ctx, bookID, holder)
	s.Require().NoError(err)
	_, err = s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), borrower(lender))
	s.Require().NoError(err)
	_, err = s.coordinator.SetAdministrativeStatus(s.ctx, bookID, core.StatusMaintenance)
	s.Require().NoError(err)

	// act
	_, err = s.coordinator.Borrow(s.ctx, bookID, holder)

	// assert
	s.ErrorIs(err, core.ErrNotAvailable)

	record := s.inventory(bookID)
	s.Equal(core.StatusMaintenance, record.Status)
	s.Equal(1, record.HeldQuantity)
}

func (s *CoordinatorSuite) Test_LoanIDOfAnotherBookIsAConflict() {
	// arrange
	bookA, bookB := s.givenBook(1), s.givenBook(1)
	alice, mallory := uuid.New(), uuid.New()
	loanID := uuid.New()

	_, err := s.coordinator.BorrowAs(s.ctx, loanID, bookA, alice)
	s.Require().NoError(err)

	// act
	_, err = s.coordinator.BorrowAs(s.ctx, loanID, bookB, mallory)

	// assert
	s.ErrorIs(err, core.ErrConflict)

	record := s.inventory(bookB)
	s.Equal(1, record.AvailableQuantity)
	s.Equal(core.StatusAvailable, record.Status)
}

func (s *CoordinatorSuite) Test_LoanIDOfAnotherBorrowerIsAConflict() {
	// arrange
	bookID := s.givenBook(2)
	alice, mallory := uuid.New(), uuid.New()
	loanID := uuid.New()

	_, err := s.coordinator.BorrowAs(s.ctx, loanID, bookID, alice)
	s.Require().NoError(err)

	// act
	loan, err := s.coordinator.BorrowAs(s.ctx, loanID, bookID, mallory)

	// assert
	s.ErrorIs(err, core.ErrConflict)
	s.Empty(loan.ID)
	s.Equal(1, s.inventory(bookID).AvailableQuantity)
}

func (s *CoordinatorSuite) Test_BorrowAsIsIdempotentForTheSameBorrower() {
	// arrange
	bookID := s.givenBook(2)
	alice := uuid.New()
	loanID := uuid.New()

	first, err := s.coordinator.BorrowAs(s.ctx, loanID, bookID, alice)
	s.Require().NoError(err)

	// act
	second, err := s.coordinator.BorrowAs(s.ctx, loanID, bookID, alice)

	// assert
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal(1, s.inventory(bookID).AvailableQuantity)
}

func (s *CoordinatorSuite) Test_ReservationIDOfAnotherBookIsAConflict() {
	// arrange
	bookA, bookB := s.givenBook(1), s.givenBook(1)
	reservationID := uuid.New()

	_, err := s.coordinator.ReserveAs(s.ctx, reservationID, bookA, uuid.New())
	s.Require().NoError(err)

	// act
	_, err = s.coordinator.ReserveAs(s.ctx, reservationID, bookB, uuid.New())

	// assert
	s.ErrorIs(err, core.ErrConflict)

	view, err := s.coordinator.InventoryView(s.ctx, bookB, s.clock.Now())
	s.Require().NoError(err)
	s.Equal(0, view.QueuedReservations)
}

func (s *CoordinatorSuite) Test_ReservationsListShowsLazyExpiry() {
	// arrange
	bookID := s.givenBook(0)
	alice, bob := uuid.New(), uuid.New()

	_, err := s.coordinator.Reserve(s.ctx, bookID, alice)
	s.Require().NoError(err)
	s.clock.Advance(8 * 24 * time.Hour)
	_, err = s.coordinator.Reserve(s.ctx, bookID, bob)
	s.Require().NoError(err)

	_, versionBefore, err := shell.LoadBookState(s.ctx, s.store, bookID.String())
	s.Require().NoError(err)

	// act
	expired, err := s.coordinator.Reservations(s.ctx, uuid.Nil, uuid.Nil, core.ReservationStatusExpired, s.clock.Now())
	s.Require().NoError(err)
	own, err := s.coordinator.Reservations(s.ctx, uuid.Nil, bob, "", s.clock.Now())
	s.Require().NoError(err)

	// assert
	s.Require().Len(expired.Reservations, 1)
	s.Equal(alice.String(), expired.Reservations[0].BorrowerID)
	s.Require().Len(own.Reservations, 1)
	s.Equal(core.ReservationStatusActive, own.Reservations[0].Status)

	_, versionAfter, err := shell.LoadBookState(s.ctx, s.store, bookID.String())
	s.Require().NoError(err)
	s.Equal(versionBefore, versionAfter, "listing writes nothing")
}

func (s *CoordinatorSuite) Test_LoansListFiltersByStatus() {
	// arrange
	bookID := s.givenBook(2)
	late, onTime := uuid.New(), uuid.New()

	lateLoan, err := s.coordinator.Borrow(s.ctx, bookID, late)
	s.Require().NoError(err)
	s.clock.Advance(20 * 24 * time.Hour)
	_, err = s.coordinator.Borrow(s.ctx, bookID, onTime)
	s.Require().NoError(err)
	s.clock.Advance(15 * 24 * time.Hour)

	// act
	overdue, err := s.coordinator.Loans(s.ctx, bookID, uuid.Nil, core.LoanOverdue, s.clock.Now())
	s.Require().NoError(err)
	all, err := s.coordinator.Loans(s.ctx, uuid.Nil, uuid.Nil, "", s.clock.Now())
	s.Require().NoError(err)

	// assert
	s.Require().Len(overdue.Loans, 1)
	s.Equal(lateLoan.ID, overdue.Loans[0].Loan.ID)
	s.True(overdue.Loans[0].Overdue.IsOverdue)
	s.Len(all.Loans, 2)
}

func (s *CoordinatorSuite) Test_ReviewBookOncePerReviewer() {
	// arrange
	bookID := s.givenBook(1)
	alice, bob := uuid.New(), uuid.New()

	_, versionBefore, err := shell.LoadBookState(s.ctx, s.store, bookID.String())
	s.Require().NoError(err)

	// act
	first, err := s.coordinator.ReviewBook(s.ctx, bookID, alice, 5, "gripping")
	s.Require().NoError(err)
	_, err = s.coordinator.ReviewBook(s.ctx, bookID, bob, 2, "")
	s.Require().NoError(err)
	_, duplicateErr := s.coordinator.ReviewBook(s.ctx, bookID, alice, 1, "changed my mind")
	_, unknownErr := s.coordinator.ReviewBook(s.ctx, uuid.New(), alice, 4, "")

	// assert
	s.ErrorIs(duplicateErr, core.ErrAlreadyReviewed)
	s.ErrorIs(unknownErr, core.ErrBookNotFound)
	s.Equal(bookID.String(), first.BookID)

	reviews, err := s.coordinator.Reviews(s.ctx, bookID)
	s.Require().NoError(err)
	s.Equal(2, reviews.Count)
	s.Equal("3.50", reviews.AverageRating.StringFixed(2))

	_, versionAfter, err := shell.LoadBookState(s.ctx, s.store, bookID.String())
	s.Require().NoError(err)
	s.Equal(versionBefore, versionAfter, "reviews stay off the book stream")
}

func (s *CoordinatorSuite) Test_CancelReservation() {
	// arrange
	bookID := s.givenBook(1)
	holder := uuid.New()
	reservation, err := s.coordinator.Reserve(s.ctx, bookID, holder)
	s.Require().NoError(err)

	_, err = s.coordinator.CancelReservation(s.ctx, uuid.MustParse(reservation.ID), borrower(uuid.New()))
	s.Require().ErrorIs(err, core.ErrForbidden)

	// act
	cancelled, err := s.coordinator.CancelReservation(s.ctx, uuid.MustParse(reservation.ID), borrower(holder))

	// assert
	s.Require().NoError(err)
	s.Equal(core.ReservationStatusCancelled, cancelled.Status)
}

func (s *CoordinatorSuite) Test_PendingWorkAndCorrections() {
	// arrange
	bookID := s.givenBook(1)
	holder := uuid.New()

	loan, err := s.coordinator.Borrow(s.ctx, bookID, uuid.New())
	s.Require().NoError(err)

	reservation, err := s.coordinator.Reserve(s.ctx, bookID, holder)
	s.Require().NoError(err)

	_, err = s.coordinator.ReturnLoan(s.ctx, uuid.MustParse(loan.ID), s.admin)
	s.Require().NoError(err)

	// act
	work, err := s.coordinator.PendingWork(s.ctx)
	s.Require().NoError(err)

	sent, err := s.coordinator.NotifyHolder(s.ctx, reservation.ID)
	s.Require().NoError(err)

	sentAgain, err := s.coordinator.NotifyHolder(s.ctx, reservation.ID)
	s.Require().NoError(err)

	// assert
	s.Empty(work.BooksToCorrect)
	s.Equal([]core.ReservationIDString{reservation.ID}, work.ReservationsToNotify)
	s.True(sent)
	s.False(sentAgain)

	s.clock.Advance(8 * 24 * time.Hour)

	work, err = s.coordinator.PendingWork(s.ctx)
	s.Require().NoError(err)
	s.Equal([]core.BookIDString{bookID.String()}, work.BooksToCorrect)

	corrected, err := s.coordinator.ApplyCorrections(s.ctx, bookID.String())
	s.Require().NoError(err)
	s.True(corrected)

	corrected, err = s.coordinator.ApplyCorrections(s.ctx, bookID.String())
	s.Require().NoError(err)
	s.False(corrected)
}
