package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
)

// ErrSerializationFailure wraps Postgres errors that mean "another transaction won, try again".
var ErrSerializationFailure = errors.New("serialization failure")

// DBAdapter defines the database operations needed by the event store.
type DBAdapter interface {
	// Query runs a read. Implementations may route it to a replica when ctx asks for eventual consistency.
	Query(ctx context.Context, query string) (DBRows, error)

	// ExecSerializable runs query in its own SERIALIZABLE transaction and returns the rows affected.
	ExecSerializable(ctx context.Context, query string) (int64, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

func isRetryableCode(code string) bool {
	return code == pgerrcode.SerializationFailure || code == pgerrcode.DeadlockDetected
}
