// Package inventoryview implements the Inventory query: the counters and status of one book as of an instant.
package inventoryview
