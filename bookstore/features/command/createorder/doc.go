// Package createorder implements the Create Order use case, the order transaction of the bookstore.
//
// Delivery details are validated before any I/O. The handler then reads the book, lets the pure
// Decide function check the self-purchase and already-sold rules, and asks the store to mark the
// book INACTIVE and insert the order in one transaction. The status change is an optimistic
// compare-and-swap: when another order won the race, the store reports a concurrency conflict and
// the handler retries with exponential backoff. The retry re-reads the book, now INACTIVE, so the
// loser ends with core.ErrAlreadySold and no second order is ever written.
package createorder
