// Package bookreviews implements the Book Reviews query: the reviews of one book or of all books,
// newest first, with their count and average rating.
package bookreviews
