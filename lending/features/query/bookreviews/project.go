package bookreviews

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
	"github.com/iguene/Bibliovirtuelle/lending/shared/shell"
)

// ProjectBookReviews implements the query logic.
//
// Query Logic:
//
//	GIVEN: the BookReviewed events of the queried book
//	WHEN: BookReviews query is executed
//	THEN: the reviews newest first with their count and average rating
func ProjectBookReviews(history core.DomainEvents, maxSequenceNumber eventstore.MaxSequenceNumberUint) BookReviews {
	result := BookReviews{
		Reviews:        make([]core.Review, 0),
		AverageRating:  decimal.Zero,
		SequenceNumber: uint(maxSequenceNumber),
	}

	sum := 0
	for _, event := range history {
		if e, ok := event.(core.BookReviewed); ok {
			result.Reviews = append(result.Reviews, core.ReviewFrom(e))
			sum += e.Rating
		}
	}

	slices.Reverse(result.Reviews)
	result.Count = len(result.Reviews)

	if result.Count > 0 {
		result.AverageRating = decimal.NewFromInt(int64(sum)).DivRound(decimal.NewFromInt(int64(result.Count)), 2)
	}

	return result
}

// BuildEventFilter creates the filter for the reviews of the book, or of all books when bookID is zero.
func BuildEventFilter(bookID uuid.UUID) eventstore.Filter {
	if bookID == uuid.Nil {
		return shell.ReviewsFilter("")
	}

	return shell.ReviewsFilter(bookID.String())
}
