package coordinator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/features/command/adjustquantity"
	"github.com/iguene/Bibliovirtuelle/lending/features/command/applycorrections"
	"github.com/iguene/Bibliovirtuelle/lending/features/command/borrowbook"
	"github.com/iguene/Bibliovirtuelle/lending/features/command/cancelreservation"
	"github.com/iguene/Bibliovirtuelle/lending/features/command/declareloanlost"
	"github.com/iguene/Bibliovirtuelle/lending/features/command/notifyholder"
	"github.com/iguene/Bibliovirtuelle/lending/features/command/registerbook"
	"github.com/iguene/Bibliovirtuelle/lending/features/command/reservebook"
	"github.com/iguene/Bibliovirtuelle/lending/features/command/returnloan"
	"github.com/iguene/Bibliovirtuelle/lending/features/command/reviewbook"
	"github.com/iguene/Bibliovirtuelle/lending/features/command/setadministrativestatus"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/bookreviews"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/borrowerloans"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/inventoryview"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/loanlist"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/loanview"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/pendingwork"
	"github.com/iguene/Bibliovirtuelle/lending/features/query/reservationlist"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell/observable"
	"github.com/iguene/Bibliovirtuelle/notify"
)

// Coordinator exposes the lending operations.
type Coordinator struct {
	eventStore shell.EventStore
	clock      shell.Clock
	policy     core.Policy

	registerBook            shell.CoreCommandHandler[registerbook.Command]
	adjustQuantity          shell.CoreCommandHandler[adjustquantity.Command]
	setAdministrativeStatus shell.CoreCommandHandler[setadministrativestatus.Command]
	borrowBook              shell.CoreCommandHandler[borrowbook.Command]
	returnLoan              shell.CoreCommandHandler[returnloan.Command]
	declareLoanLost         shell.CoreCommandHandler[declareloanlost.Command]
	reserveBook             shell.CoreCommandHandler[reservebook.Command]
	cancelReservation       shell.CoreCommandHandler[cancelreservation.Command]
	applyCorrections        shell.CoreCommandHandler[applycorrections.Command]
	notifyHolder            shell.CoreCommandHandler[notifyholder.Command]
	reviewBook              shell.CoreCommandHandler[reviewbook.Command]

	loanView        shell.CoreQueryHandler[loanview.Query, loanview.LoanView]
	inventoryView   shell.CoreQueryHandler[inventoryview.Query, inventoryview.InventoryView]
	borrowerLoans   shell.CoreQueryHandler[borrowerloans.Query, borrowerloans.BorrowerLoans]
	pendingWork     shell.CoreQueryHandler[pendingwork.Query, pendingwork.PendingWork]
	loanList        shell.CoreQueryHandler[loanlist.Query, loanlist.LoanList]
	reservationList shell.CoreQueryHandler[reservationlist.Query, reservationlist.ReservationList]
	bookReviews     shell.CoreQueryHandler[bookreviews.Query, bookreviews.BookReviews]
}

type settings struct {
	clock          shell.Clock
	policy         core.Policy
	notifier       notify.Notifier
	retryOptions   []shell.RetryOption
	observableOpts []observable.Option
}

// Option configures a Coordinator.
type Option func(*settings)

// WithClock replaces the system clock.
func WithClock(clock shell.Clock) Option {
	return func(s *settings) {
		s.clock = clock
	}
}

// WithPolicy replaces core.DefaultPolicy.
func WithPolicy(policy core.Policy) Option {
	return func(s *settings) {
		s.policy = policy
	}
}

// WithNotifier sets where reservation-ready notifications go. Without it they are dropped.
func WithNotifier(notifier notify.Notifier) Option {
	return func(s *settings) {
		s.notifier = notifier
	}
}

// WithRetryOptions configures the conflict retries of every command.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(s *settings) {
		s.retryOptions = opts
	}
}

// WithObservability instruments every handler with the given metrics, tracing and logging.
func WithObservability(opts ...observable.Option) Option {
	return func(s *settings) {
		s.observableOpts = opts
	}
}

// New wires all feature handlers on top of eventStore.
func New(eventStore shell.EventStore, opts ...Option) *Coordinator {
	s := settings{
		clock:    shell.NewSystemClock(),
		policy:   core.DefaultPolicy(),
		notifier: discardNotifier{},
	}

	for _, opt := range opts {
		opt(&s)
	}

	obs := s.observableOpts

	return &Coordinator{
		eventStore: eventStore,
		clock:      s.clock,
		policy:     s.policy,

		registerBook: observable.NewCommandWrapper[registerbook.Command](
			registerbook.NewCommandHandler(eventStore, registerbook.WithRetryOptions(s.retryOptions...)), obs...),
		adjustQuantity: observable.NewCommandWrapper[adjustquantity.Command](
			adjustquantity.NewCommandHandler(eventStore,
				adjustquantity.WithPolicy(s.policy), adjustquantity.WithRetryOptions(s.retryOptions...)), obs...),
		setAdministrativeStatus: observable.NewCommandWrapper[setadministrativestatus.Command](
			setadministrativestatus.NewCommandHandler(eventStore,
				setadministrativestatus.WithPolicy(s.policy), setadministrativestatus.WithRetryOptions(s.retryOptions...)), obs...),
		borrowBook: observable.NewCommandWrapper[borrowbook.Command](
			borrowbook.NewCommandHandler(eventStore,
				borrowbook.WithPolicy(s.policy), borrowbook.WithRetryOptions(s.retryOptions...)), obs...),
		returnLoan: observable.NewCommandWrapper[returnloan.Command](
			returnloan.NewCommandHandler(eventStore,
				returnloan.WithPolicy(s.policy), returnloan.WithRetryOptions(s.retryOptions...)), obs...),
		declareLoanLost: observable.NewCommandWrapper[declareloanlost.Command](
			declareloanlost.NewCommandHandler(eventStore,
				declareloanlost.WithPolicy(s.policy), declareloanlost.WithRetryOptions(s.retryOptions...)), obs...),
		reserveBook: observable.NewCommandWrapper[reservebook.Command](
			reservebook.NewCommandHandler(eventStore,
				reservebook.WithPolicy(s.policy), reservebook.WithRetryOptions(s.retryOptions...)), obs...),
		cancelReservation: observable.NewCommandWrapper[cancelreservation.Command](
			cancelreservation.NewCommandHandler(eventStore,
				cancelreservation.WithPolicy(s.policy), cancelreservation.WithRetryOptions(s.retryOptions...)), obs...),
		applyCorrections: observable.NewCommandWrapper[applycorrections.Command](
			applycorrections.NewCommandHandler(eventStore,
				applycorrections.WithPolicy(s.policy), applycorrections.WithRetryOptions(s.retryOptions...)), obs...),
		notifyHolder: observable.NewCommandWrapper[notifyholder.Command](
			notifyholder.NewCommandHandler(eventStore, s.notifier,
				notifyholder.WithPolicy(s.policy), notifyholder.WithRetryOptions(s.retryOptions...)), obs...),
		reviewBook: observable.NewCommandWrapper[reviewbook.Command](
			reviewbook.NewCommandHandler(eventStore, reviewbook.WithRetryOptions(s.retryOptions...)), obs...),

		loanView: observable.NewQueryWrapper[loanview.Query, loanview.LoanView](
			loanview.NewQueryHandler(eventStore, loanview.WithPolicy(s.policy)), obs...),
		inventoryView: observable.NewQueryWrapper[inventoryview.Query, inventoryview.InventoryView](
			inventoryview.NewQueryHandler(eventStore, inventoryview.WithPolicy(s.policy)), obs...),
		borrowerLoans: observable.NewQueryWrapper[borrowerloans.Query, borrowerloans.BorrowerLoans](
			borrowerloans.NewQueryHandler(eventStore, borrowerloans.WithPolicy(s.policy)), obs...),
		pendingWork: observable.NewQueryWrapper[pendingwork.Query, pendingwork.PendingWork](
			pendingwork.NewQueryHandler(eventStore, pendingwork.WithPolicy(s.policy)), obs...),
		loanList: observable.NewQueryWrapper[loanlist.Query, loanlist.LoanList](
			loanlist.NewQueryHandler(eventStore, loanlist.WithPolicy(s.policy)), obs...),
		reservationList: observable.NewQueryWrapper[reservationlist.Query, reservationlist.ReservationList](
			reservationlist.NewQueryHandler(eventStore, reservationlist.WithPolicy(s.policy)), obs...),
		bookReviews: observable.NewQueryWrapper[bookreviews.Query, bookreviews.BookReviews](
			bookreviews.NewQueryHandler(eventStore), obs...),
	}
}

// Policy returns the lending rules in effect.
func (c *Coordinator) Policy() core.Policy {
	return c.policy
}

// Now returns the coordinator's current time.
func (c *Coordinator) Now() time.Time {
	return c.clock.Now()
}

// RegisterBook adds a book with quantity units to the collection.
func (c *Coordinator) RegisterBook(ctx context.Context, bookID uuid.UUID, quantity int) (core.InventoryRecord, error) {
	now := c.clock.Now()

	if _, err := c.registerBook.Handle(ctx, registerbook.BuildCommand(bookID, quantity, now)); err != nil {
		return core.InventoryRecord{}, err
	}

	return c.Inventory(ctx, bookID, now)
}

// AdjustQuantity changes the number of owned units of a book.
func (c *Coordinator) AdjustQuantity(ctx context.Context, bookID uuid.UUID, quantity int) (core.InventoryRecord, error) {
	now := c.clock.Now()

	if _, err := c.adjustQuantity.Handle(ctx, adjustquantity.BuildCommand(bookID, quantity, now)); err != nil {
		return core.InventoryRecord{}, err
	}

	return c.Inventory(ctx, bookID, now)
}

// SetAdministrativeStatus puts a book into maintenance or lost, or clears the hold when status is empty.
func (c *Coordinator) SetAdministrativeStatus(ctx context.Context, bookID uuid.UUID, status string) (core.InventoryRecord, error) {
	now := c.clock.Now()

	if _, err := c.setAdministrativeStatus.Handle(ctx, setadministrativestatus.BuildCommand(bookID, status, now)); err != nil {
		return core.InventoryRecord{}, err
	}

	return c.Inventory(ctx, bookID, now)
}

// Borrow lends one unit of the book to the borrower under a new loan id.
func (c *Coordinator) Borrow(ctx context.Context, bookID, borrowerID uuid.UUID) (core.Loan, error) {
	return c.BorrowAs(ctx, uuid.New(), bookID, borrowerID)
}

// BorrowAs is Borrow with a loan id chosen by the caller. Repeating it with the same id returns the same loan.
func (c *Coordinator) BorrowAs(ctx context.Context, loanID, bookID, borrowerID uuid.UUID) (core.Loan, error) {
	now := c.clock.Now()

	if _, err := c.borrowBook.Handle(ctx, borrowbook.BuildCommand(loanID, bookID, borrowerID, now)); err != nil {
		return core.Loan{}, err
	}

	view, err := c.Loan(ctx, loanID, now)
	if err != nil {
		return core.Loan{}, err
	}

	return view.Loan, nil
}

// ReturnLoan ends a loan. Returning a returned loan again succeeds and returns the stored loan.
func (c *Coordinator) ReturnLoan(ctx context.Context, loanID uuid.UUID, actor core.Actor) (core.Loan, error) {
	now := c.clock.Now()

	if _, err := c.returnLoan.Handle(ctx, returnloan.BuildCommand(loanID, actor, now)); err != nil {
		return core.Loan{}, err
	}

	view, err := c.Loan(ctx, loanID, now)
	if err != nil {
		return core.Loan{}, err
	}

	return view.Loan, nil
}

// DeclareLoanLost writes off the unit of an outstanding loan. Only admins may do this.
func (c *Coordinator) DeclareLoanLost(ctx context.Context, loanID uuid.UUID, actor core.Actor) (core.Loan, error) {
	now := c.clock.Now()

	if _, err := c.declareLoanLost.Handle(ctx, declareloanlost.BuildCommand(loanID, actor, now)); err != nil {
		return core.Loan{}, err
	}

	view, err := c.Loan(ctx, loanID, now)
	if err != nil {
		return core.Loan{}, err
	}

	return view.Loan, nil
}

// Reserve queues the borrower for the next free unit of the book under a new reservation id.
func (c *Coordinator) Reserve(ctx context.Context, bookID, borrowerID uuid.UUID) (core.Reservation, error) {
	return c.ReserveAs(ctx, uuid.New(), bookID, borrowerID)
}

// ReserveAs is Reserve with a reservation id chosen by the caller.
func (c *Coordinator) ReserveAs(ctx context.Context, reservationID, bookID, borrowerID uuid.UUID) (core.Reservation, error) {
	now := c.clock.Now()

	if _, err := c.reserveBook.Handle(ctx, reservebook.BuildCommand(reservationID, bookID, borrowerID, now)); err != nil {
		return core.Reservation{}, err
	}

	return c.Reservation(ctx, reservationID, now)
}

// CancelReservation withdraws a queued reservation.
func (c *Coordinator) CancelReservation(ctx context.Context, reservationID uuid.UUID, actor core.Actor) (core.Reservation, error) {
	now := c.clock.Now()

	if _, err := c.cancelReservation.Handle(ctx, cancelreservation.BuildCommand(reservationID, actor, now)); err != nil {
		return core.Reservation{}, err
	}

	return c.Reservation(ctx, reservationID, now)
}

// ReviewBook records the reviewer's rating of a book. A reviewer reviews a book once.
func (c *Coordinator) ReviewBook(
	ctx context.Context,
	bookID, reviewerID uuid.UUID,
	rating int,
	comment string,
) (core.Review, error) {

	now := c.clock.Now()
	reviewID := uuid.New()

	if _, err := c.reviewBook.Handle(ctx, reviewbook.BuildCommand(reviewID, bookID, reviewerID, rating, comment, now)); err != nil {
		return core.Review{}, err
	}

	return core.ReviewFrom(core.BuildBookReviewed(reviewID.String(), bookID.String(), reviewerID.String(), rating, comment, now)), nil
}

// ComputeOverdueView derives the overdue state and accrued fine of loan as of asOf. It reads nothing.
func (c *Coordinator) ComputeOverdueView(loan core.Loan, asOf time.Time) core.OverdueView {
	return c.policy.OverdueView(loan, asOf)
}

// ApplyCorrections persists the lazy corrections due on a book now. It reports whether anything was written.
func (c *Coordinator) ApplyCorrections(ctx context.Context, bookID core.BookIDString) (bool, error) {
	id, err := uuid.Parse(bookID)
	if err != nil {
		return false, core.ErrInvalidInput
	}

	result, err := c.applyCorrections.Handle(ctx, applycorrections.BuildCommand(id, c.clock.Now()))
	if err != nil {
		return false, err
	}

	return len(result.Events) > 0, nil
}

// NotifyHolder tells the holder of a fulfilled reservation that their unit is waiting.
// It reports whether a notification was sent.
func (c *Coordinator) NotifyHolder(ctx context.Context, reservationID core.ReservationIDString) (bool, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return false, core.ErrInvalidInput
	}

	result, err := c.notifyHolder.Handle(ctx, notifyholder.BuildCommand(id, c.clock.Now()))
	if err != nil {
		return false, err
	}

	return !result.Idempotent, nil
}

type discardNotifier struct{}

func (discardNotifier) NotifyReservationReady(context.Context, notify.ReservationReady) error {
	return nil
}
