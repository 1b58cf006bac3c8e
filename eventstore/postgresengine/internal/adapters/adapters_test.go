package adapters

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func Test_ClassifyPGXError(t *testing.T) {
	serialization := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	assert.ErrorIs(t, classifyPGXError(serialization), ErrSerializationFailure)
	assert.NotErrorIs(t, classifyPGXError(unique), ErrSerializationFailure)
	assert.NotErrorIs(t, classifyPGXError(errors.New("boom")), ErrSerializationFailure)
}

func Test_ClassifyPQError(t *testing.T) {
	deadlock := &pq.Error{Code: pq.ErrorCode(pgerrcode.DeadlockDetected)}
	syntax := &pq.Error{Code: pq.ErrorCode(pgerrcode.SyntaxError)}

	assert.ErrorIs(t, classifyPQError(deadlock), ErrSerializationFailure)
	assert.NotErrorIs(t, classifyPQError(syntax), ErrSerializationFailure)
}
