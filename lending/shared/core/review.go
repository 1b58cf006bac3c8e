package core

import (
	"time"
)

// ReviewIDString represents a review identifier
type ReviewIDString = string

// Rating bounds of a review, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

const BookReviewedEventType = "BookReviewed"

// Review is one reader's rating of a book. A reader reviews a book at most once.
type Review struct {
	ID         ReviewIDString
	BookID     BookIDString
	ReviewerID BorrowerIDString
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// BookReviewed records a review. It is not part of the book stream, so reviews never contend with lending.
type BookReviewed struct {
	ReviewID   ReviewIDString
	BookID     BookIDString
	ReviewerID BorrowerIDString
	Rating     int
	Comment    string
	OccurredAt OccurredAtTS
}

// BuildBookReviewed creates a new BookReviewed event.
func BuildBookReviewed(
	reviewID ReviewIDString,
	bookID BookIDString,
	reviewerID BorrowerIDString,
	rating int,
	comment string,
	occurredAt time.Time,
) BookReviewed {

	return BookReviewed{
		ReviewID:   reviewID,
		BookID:     bookID,
		ReviewerID: reviewerID,
		Rating:     rating,
		Comment:    comment,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e BookReviewed) EventType() string {
	return BookReviewedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReviewed) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ForBook returns the book the event belongs to.
func (e BookReviewed) ForBook() BookIDString {
	return e.BookID
}

// ReviewFrom returns the review the event records.
func ReviewFrom(e BookReviewed) Review {
	return Review{
		ID:         e.ReviewID,
		BookID:     e.BookID,
		ReviewerID: e.ReviewerID,
		Rating:     e.Rating,
		Comment:    e.Comment,
		CreatedAt:  e.OccurredAt,
	}
}
