package inventoryview

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "InventoryView"
)

// Query represents the intent to read the inventory of a book as of AsOf.
type Query struct {
	BookID uuid.UUID
	AsOf   time.Time
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(bookID uuid.UUID, asOf time.Time) Query {
	return Query{
		BookID: bookID,
		AsOf:   asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
