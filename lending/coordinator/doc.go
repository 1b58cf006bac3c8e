// Package coordinator is the entry point of the lending engine.
//
// The Coordinator reads the clock once per operation, turns the call into a command or query,
// and runs it through the instrumented handler of its feature slice. All writes of one book are
// serialized by the event store's compare-and-swap on that book's stream; the coordinator itself
// holds no state and is safe for concurrent use.
package coordinator
