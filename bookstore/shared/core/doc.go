// Package core contains the domain model of the bookstore:
// users, their profiles, book listings, and the orders that buy them.
//
// It holds the business vocabulary (genres, statuses, languages), the validation rules for
// every field a user can set, the access predicates IsOwner and IsMyProfile, and the
// DecisionResult returned by the pure Decide functions of the command features.
//
// Nothing in here performs I/O. Business rule violations are reported through the sentinel
// errors in errors.go, so callers can classify them with errors.Is.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
