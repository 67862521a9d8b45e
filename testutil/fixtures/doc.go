// Package fixtures seeds a bookstore store with users, books, and orders for tests.
package fixtures
