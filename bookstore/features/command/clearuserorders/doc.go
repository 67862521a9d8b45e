// Package clearuserorders implements the Clear User Orders use case.
//
// A user deletes their whole order history. Only the orders are removed: books that were sold
// through them stay INACTIVE. Clearing an empty history is an idempotent success.
package clearuserorders
