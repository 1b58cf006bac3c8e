// Package httpapi serves the lending operations over REST with echo.
//
// Every route below /v1 needs an HS256 bearer token whose sub claim is the borrower's UUID
// and whose role claim is user or admin. Errors are rendered as {"error": message, "code": kind}.
package httpapi
