// Package httpapi exposes the bookstore use cases as a JSON HTTP API on top of gin.
//
// Every request under /api except the catalogue listing needs an HS256 bearer token whose "sub"
// claim is the caller's user ID. The API hands the caller explicitly to the command and query
// handlers, generates IDs and timestamps for new records, and reads changed records back through
// the query handlers so that responses always show stored state.
//
// Business errors map onto status codes:
//
//	validation      400
//	no/bad token    401
//	authorization   403
//	not found       404
//	self purchase   405
//	already sold    409
//	rate limited    429
//	anything else   500
package httpapi
