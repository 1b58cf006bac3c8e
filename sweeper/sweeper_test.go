package sweeper_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iguene/Bibliovirtuelle/eventstore/memengine"
	"github.com/iguene/Bibliovirtuelle/lending/coordinator"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
	"github.com/iguene/Bibliovirtuelle/notify"
	"github.com/iguene/Bibliovirtuelle/sweeper"
)

type notifierSpy struct {
	mu       sync.Mutex
	fail     bool
	messages []notify.ReservationReady
}

func (n *notifierSpy) NotifyReservationReady(_ context.Context, message notify.ReservationReady) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.fail {
		return errors.New("broker unreachable")
	}

	n.messages = append(n.messages, message)

	return nil
}

func (n *notifierSpy) setFail(fail bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.fail = fail
}

func (n *notifierSpy) sent() []notify.ReservationReady {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]notify.ReservationReady(nil), n.messages...)
}

type fixture struct {
	clock       *shell.ManualClock
	notifier    *notifierSpy
	coordinator *coordinator.Coordinator
	sweeper     *sweeper.Sweeper
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := fixture{
		clock:    shell.NewManualClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
		notifier: &notifierSpy{},
	}
	f.coordinator = coordinator.New(memengine.NewEventStore(),
		coordinator.WithClock(f.clock),
		coordinator.WithNotifier(f.notifier),
	)

	s, err := sweeper.New(f.coordinator, sweeper.WithInterval(10*time.Millisecond))
	require.NoError(t, err)
	f.sweeper = s

	return f
}

// givenHold leaves a book whose only unit is held for a fresh reservation.
func (f fixture) givenHold(t *testing.T) (uuid.UUID, core.Reservation) {
	t.Helper()

	ctx := context.Background()
	bookID := uuid.New()
	_, err := f.coordinator.RegisterBook(ctx, bookID, 1)
	require.NoError(t, err)

	loan, err := f.coordinator.Borrow(ctx, bookID, uuid.New())
	require.NoError(t, err)

	reservation, err := f.coordinator.Reserve(ctx, bookID, uuid.New())
	require.NoError(t, err)

	_, err = f.coordinator.ReturnLoan(ctx, uuid.MustParse(loan.ID), core.Actor{ID: loan.BorrowerID})
	require.NoError(t, err)

	return bookID, reservation
}

func Test_Sweeper_RunOnce_NotifiesEachHolderOnce(t *testing.T) {
	// arrange
	f := newFixture(t)
	bookID, reservation := f.givenHold(t)

	// act
	first, err := f.sweeper.RunOnce(context.Background())
	require.NoError(t, err)

	second, err := f.sweeper.RunOnce(context.Background())
	require.NoError(t, err)

	// assert
	assert.Equal(t, 1, first.Notified)
	assert.Equal(t, 0, second.Notified)

	sent := f.notifier.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, reservation.ID, sent[0].ReservationID)
	assert.Equal(t, bookID.String(), sent[0].BookID)
}

func Test_Sweeper_RunOnce_RetriesFailedNotifications(t *testing.T) {
	// arrange
	f := newFixture(t)
	_, reservation := f.givenHold(t)
	f.notifier.setFail(true)

	// act
	failed, err := f.sweeper.RunOnce(context.Background())
	f.notifier.setFail(false)
	retried, retryErr := f.sweeper.RunOnce(context.Background())

	// assert
	require.Error(t, err)
	assert.ErrorContains(t, err, reservation.ID)
	assert.Equal(t, 1, failed.Failed)

	require.NoError(t, retryErr)
	assert.Equal(t, 1, retried.Notified)
	assert.Len(t, f.notifier.sent(), 1)
}

func Test_Sweeper_RunOnce_PersistsCorrections(t *testing.T) {
	// arrange
	f := newFixture(t)
	bookID, _ := f.givenHold(t)
	_, err := f.sweeper.RunOnce(context.Background())
	require.NoError(t, err)

	f.clock.Advance(8 * 24 * time.Hour)

	// act
	report, err := f.sweeper.RunOnce(context.Background())
	require.NoError(t, err)
	again, err := f.sweeper.RunOnce(context.Background())
	require.NoError(t, err)

	// assert
	assert.Equal(t, 1, report.BooksCorrected)
	assert.Equal(t, 0, again.BooksCorrected)

	record, err := f.coordinator.Inventory(context.Background(), bookID, f.clock.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, record.AvailableQuantity)
	assert.Equal(t, core.StatusAvailable, record.Status)
}

func Test_Sweeper_Run_StopsWithContext(t *testing.T) {
	// arrange
	f := newFixture(t)
	f.givenHold(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// act
	go func() {
		done <- f.sweeper.Run(ctx)
	}()

	assert.Eventually(t, func() bool { return len(f.notifier.sent()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()

	// assert
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func Test_Sweeper_New_RejectsNonPositiveInterval(t *testing.T) {
	// act
	_, err := sweeper.New(nil, sweeper.WithInterval(0))

	// assert
	assert.ErrorIs(t, err, sweeper.ErrInvalidInterval)
}
