package bookreviews

import (
	"github.com/google/uuid"
)

const (
	queryType = "BookReviews"
)

// Query represents the intent to list reviews. A zero BookID lists the reviews of all books.
type Query struct {
	BookID uuid.UUID
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(bookID uuid.UUID) Query {
	return Query{BookID: bookID}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
