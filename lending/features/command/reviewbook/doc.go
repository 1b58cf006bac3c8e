// Package reviewbook implements the Review Book use case.
//
// A reader rates a registered book from 1 to 5, optionally with a comment.
// Each reader reviews a book at most once; a second review is a conflict.
// The decision reads only the book's registration and the reader's earlier review of it,
// so reviewing never competes with lending on the book stream.
package reviewbook
