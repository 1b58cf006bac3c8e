// Package memengine is an in-process event store engine.
//
// It implements the same Query/Append contract as postgresengine: Append is guarded by the
// max sequence number of the Filter's dynamic stream and fails with
// eventstore.ErrConcurrencyConflict when another writer appended a matching event in
// between. All events of one Append become visible together or not at all.
//
// Query and Append take one store-wide lock, each only for its own scan. Writers that have
// queried the same stream and decide concurrently therefore see real conflicts, while
// writers on unrelated streams never conflict but do queue for the lock during the scan.
// That is fine for tests and local development; production deployments use postgresengine,
// where appends on unrelated streams proceed in parallel.
package memengine
