// Package listuserorders implements the List User Orders query use case.
//
// A user sees their own orders, oldest first. Orders of the same instant are ordered by ID.
package listuserorders
