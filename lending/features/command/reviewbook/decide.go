package reviewbook

import (
	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/eventstore"
	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

// Decide implements the business logic to determine whether a reader may review a book.
//
// Business Rules:
//
//	GIVEN: A registered book with BookID and a reader with ReviewerID
//	WHEN: ReviewBook command is received
//	THEN: BookReviewed event is generated
//	ERROR: ErrRatingOutOfRange if the rating is outside 1..5
//	ERROR: ErrBookNotFound if the book was never registered
//	ERROR: ErrAlreadyReviewed if the reader reviewed the book before
func Decide(history core.DomainEvents, command Command) core.DecisionResult {
	if command.Rating < core.MinRating || command.Rating > core.MaxRating {
		return core.ErrorDecision(core.ErrRatingOutOfRange)
	}

	bookID, reviewerID := command.BookID.String(), command.ReviewerID.String()
	registered := false

	for _, event := range history {
		switch e := event.(type) {
		case core.BookRegistered:
			if e.BookID == bookID {
				registered = true
			}

		case core.BookReviewed:
			if e.BookID == bookID && e.ReviewerID == reviewerID {
				return core.ErrorDecision(core.ErrAlreadyReviewed)
			}
		}
	}

	if !registered {
		return core.ErrorDecision(core.ErrBookNotFound)
	}

	return core.SuccessDecision(
		core.BuildBookReviewed(
			command.ReviewID.String(),
			bookID,
			reviewerID,
			command.Rating,
			command.Comment,
			command.OccurredAt,
		),
	)
}

// BuildEventFilter creates the filter for the registration of the book and the reader's review of it.
func BuildEventFilter(bookID uuid.UUID, reviewerID uuid.UUID) eventstore.Filter {
	return eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf(core.BookRegisteredEventType).
		AndAnyPredicateOf(eventstore.P("BookID", bookID.String())).
		OrMatching().
		AnyEventTypeOf(core.BookReviewedEventType).
		AndAllPredicatesOf(
			eventstore.P("BookID", bookID.String()),
			eventstore.P("ReviewerID", reviewerID.String()),
		).
		Finalize()
}
