// Package registerbook implements the Register Book use case.
//
// A book enters the catalogue with the number of units the library owns. All units start available.
// Registering the same book twice is a conflict.
package registerbook
