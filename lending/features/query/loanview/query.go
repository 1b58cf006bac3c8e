package loanview

import (
	"time"

	"github.com/google/uuid"
)

const (
	queryType = "LoanView"
)

// Query represents the intent to read one loan as of AsOf.
type Query struct {
	LoanID uuid.UUID
	AsOf   time.Time
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(loanID uuid.UUID, asOf time.Time) Query {
	return Query{
		LoanID: loanID,
		AsOf:   asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}
