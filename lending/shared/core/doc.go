// Package core holds the pure lending domain: events, the book inventory record, loans and
// reservations, the per-book state projection, lazy corrections, and the fine calculator.
//
// Nothing here reads the clock or performs I/O. Every time-dependent function takes an explicit
// as-of instant, so results are deterministic for a given history and instant.
package core
