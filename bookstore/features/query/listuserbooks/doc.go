// Package listuserbooks implements the List User Books query use case.
//
// A user sees every book they listed, sold or not, oldest first.
package listuserbooks
