package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes every message to a logger and never fails.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a LogNotifier. A nil logger means slog.Default().
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogNotifier{logger: logger}
}

// NotifyReservationReady logs message at info level.
func (n *LogNotifier) NotifyReservationReady(ctx context.Context, message ReservationReady) error {
	n.logger.InfoContext(ctx, "reservation ready",
		"reservation_id", message.ReservationID,
		"book_id", message.BookID,
		"borrower_id", message.BorrowerID,
		"hold_until", message.HoldUntil,
	)

	return nil
}
