// Package retrievebook implements the Retrieve Book query use case.
//
// Any authenticated user may look at any book, sold or not.
package retrievebook
