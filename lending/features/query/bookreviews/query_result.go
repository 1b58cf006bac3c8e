package bookreviews

import (
	"github.com/shopspring/decimal"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// BookReviews lists reviews newest first. AverageRating is rounded to two places and zero without reviews.
type BookReviews struct {
	Reviews        []core.Review
	Count          int
	AverageRating  decimal.Decimal
	SequenceNumber uint
}

// GetSequenceNumber returns the highest sequence number included in the result.
func (r BookReviews) GetSequenceNumber() uint {
	return r.SequenceNumber
}
