// Package postgresengine is the PostgreSQL engine of the event store.
//
// It works with pgxpool.Pool, database/sql (lib/pq) and sqlx through internal adapters.
// The events table is created by the migrations package.
//
// Usage:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := postgresengine.NewEventStoreFromPGXPool(
//		pool,
//		postgresengine.WithLogger(slog.Default()),
//		postgresengine.WithMetrics(metricsCollector),
//	)
//
//	events, maxSeq, _ := store.Query(ctx, filter)
//	err := store.Append(ctx, filter, maxSeq, newEvent)
package postgresengine
