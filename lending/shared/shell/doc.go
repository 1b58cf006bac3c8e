// Package shell is the imperative shell around the lending core.
//
// It converts between domain events and storable events (jsoniter), builds event metadata,
// retries optimistic-concurrency conflicts with exponential backoff, and carries the
// observability helpers shared by all command and query handlers.
package shell
