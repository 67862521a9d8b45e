// Package updatebook implements the Update Book use case.
//
// Only the author may change a book, and only its name, price, and genre. The status of a book
// is never patchable: it changes exclusively through a successful order.
// A patch that changes nothing is an idempotent success.
package updatebook
