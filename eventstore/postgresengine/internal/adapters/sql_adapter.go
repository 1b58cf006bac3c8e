package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// SQLAdapter implements DBAdapter for database/sql with the lib/pq driver.
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter creates a SQLAdapter.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

func (s *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func (s *SQLAdapter) ExecSerializable(ctx context.Context, query string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return 0, classifyPQError(err)
	}

	return execAndCommit(ctx, tx, query)
}

// sqlTx is the part of *sql.Tx and *sqlx.Tx the adapters use.
type sqlTx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Commit() error
	Rollback() error
}

func execAndCommit(ctx context.Context, tx sqlTx, query string) (int64, error) {
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	result, err := tx.ExecContext(ctx, query)
	if err != nil {
		return 0, classifyPQError(err)
	}

	if err = tx.Commit(); err != nil {
		return 0, classifyPQError(err)
	}

	return result.RowsAffected()
}

func classifyPQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && isRetryableCode(string(pqErr.Code)) {
		return errors.Join(ErrSerializationFailure, err)
	}

	return err
}

// stdRows wraps *sql.Rows.
type stdRows struct {
	rows *sql.Rows
}

func (s *stdRows) Next() bool {
	return s.rows.Next()
}

func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

func (s *stdRows) Close() error {
	return s.rows.Close()
}
