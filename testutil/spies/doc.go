// Package spies provides recording test doubles for the observability ports.
package spies
