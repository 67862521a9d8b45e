// Package retrieveorder implements the Retrieve Order query use case.
//
// Any authenticated user may read any order by its ID.
// Ownership is not checked here; the order lists of a user are private through listuserorders.
package retrieveorder
