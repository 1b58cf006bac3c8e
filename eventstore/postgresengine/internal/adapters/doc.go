// Package adapters hides the differences between pgxpool.Pool, database/sql and sqlx
// behind the small DBAdapter interface the Postgres engine needs.
//
// Every adapter runs appends inside a SERIALIZABLE transaction and reports Postgres
// serialization failures as ErrSerializationFailure, so the engine can treat them as
// concurrency conflicts on the stream.
package adapters
