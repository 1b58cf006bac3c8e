package pendingwork

import (
	"time"
)

const (
	queryType = "PendingWork"
)

// Query represents the intent to find all pending background work as of AsOf.
type Query struct {
	AsOf time.Time
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(asOf time.Time) Query {
	return Query{AsOf: asOf}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
