package loanlist

import (
	"time"

	"github.com/google/uuid"

	"github.com/iguene/Bibliovirtuelle/lending/shared/core"
)

const (
	queryType = "LoanList"
)

// Query represents the intent to list loans as of AsOf. A zero BookID or BorrowerID and an empty Status match any.
type Query struct {
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	Status     string
	AsOf       time.Time
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(bookID uuid.UUID, borrowerID uuid.UUID, status string, asOf time.Time) Query {
	return Query{
		BookID:     bookID,
		BorrowerID: borrowerID,
		Status:     status,
		AsOf:       asOf,
	}
}

// QueryType returns the query type.
func (q Query) QueryType() string {
	return queryType
}

// Validate rejects an unknown status filter.
func (q Query) Validate() error {
	if q.Status != "" && !core.IsLoanStatus(q.Status) {
		return core.ErrUnknownStatusFilter
	}

	return nil
}
