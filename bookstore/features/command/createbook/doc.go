// Package createbook implements the Create Book use case.
//
// A registered user lists a book for sale. The new listing is ACTIVE and the caller becomes its author.
// Name, price, and genre are validated by the pure Decide function before anything is written.
package createbook
