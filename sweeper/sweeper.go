package sweeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iguene/Bibliovirtuelle/lending/features/query/pendingwork"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const defaultInterval = time.Minute

// ErrInvalidInterval is returned when the sweep interval is not positive.
var ErrInvalidInterval = errors.New("sweep interval must be positive")

// Lending is the part of the coordinator the sweeper drives.
type Lending interface {
	PendingWork(ctx context.Context) (pendingwork.PendingWork, error)
	ApplyCorrections(ctx context.Context, bookID core.BookIDString) (bool, error)
	NotifyHolder(ctx context.Context, reservationID core.ReservationIDString) (bool, error)
}

// Report summarizes one sweep.
type Report struct {
	BooksCorrected int
	Notified       int
	Failed         int
}

// Sweeper runs sweeps on a fixed interval.
type Sweeper struct {
	lending  Lending
	interval time.Duration
	logger   *slog.Logger
}

// Option configures a Sweeper.
type Option func(*Sweeper) error

// WithInterval sets the time between two sweeps.
func WithInterval(interval time.Duration) Option {
	return func(s *Sweeper) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}

		s.interval = interval

		return nil
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sweeper) error {
		s.logger = logger
		return nil
	}
}

// New creates a Sweeper.
func New(lending Lending, opts ...Option) (*Sweeper, error) {
	s := &Sweeper{
		lending:  lending,
		interval: defaultInterval,
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Run sweeps once immediately and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.InfoContext(ctx, "sweeper started", "interval", s.interval.String())

	for {
		s.sweep(ctx)

		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "sweeper stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	report, err := s.RunOnce(ctx)
	if err != nil && ctx.Err() == nil {
		s.logger.WarnContext(ctx, "sweep finished with errors",
			"books_corrected", report.BooksCorrected,
			"notified", report.Notified,
			"failed", report.Failed,
			"error", err.Error(),
		)

		return
	}

	if report.BooksCorrected > 0 || report.Notified > 0 {
		s.logger.InfoContext(ctx, "sweep finished",
			"books_corrected", report.BooksCorrected,
			"notified", report.Notified,
		)
	}
}

// RunOnce applies the corrections due on every book, then notifies every waiting holder.
// A failing item does not stop the sweep; all failures are joined into the returned error.
func (s *Sweeper) RunOnce(ctx context.Context) (Report, error) {
	work, err := s.lending.PendingWork(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("finding pending work: %w", err)
	}

	report := Report{}
	failures := make([]error, 0)

	for _, bookID := range work.BooksToCorrect {
		if err := ctx.Err(); err != nil {
			return report, errors.Join(append(failures, err)...)
		}

		written, err := s.lending.ApplyCorrections(ctx, bookID)
		if err != nil {
			report.Failed++
			failures = append(failures, fmt.Errorf("correcting book %s: %w", bookID, err))

			continue
		}

		if written {
			report.BooksCorrected++
		}
	}

	for _, reservationID := range work.ReservationsToNotify {
		if err := ctx.Err(); err != nil {
			return report, errors.Join(append(failures, err)...)
		}

		sent, err := s.lending.NotifyHolder(ctx, reservationID)
		if err != nil {
			report.Failed++
			failures = append(failures, fmt.Errorf("notifying holder of reservation %s: %w", reservationID, err))

			continue
		}

		if sent {
			report.Notified++
		}
	}

	return report, errors.Join(failures...)
}
