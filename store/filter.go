package store

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// BookSortOrder defines how catalogue query results are ordered.
type BookSortOrder string

const (
	// SortByCreation orders by creation time, then by ID. It is the default.
	SortByCreation BookSortOrder = "created_at"

	// SortByPriceAsc orders by ascending price, ties broken by creation time and ID.
	SortByPriceAsc BookSortOrder = "price"

	// SortByPriceDesc orders by descending price, ties broken by creation time and ID.
	SortByPriceDesc BookSortOrder = "-price"
)

/***** BookFilter *****/

// BookFilter is the engine-independent description of a catalogue query.
// Engines translate it into their own query language.
type BookFilter struct {
	statuses []string
	genre    string
	authorID uuid.UUID
	search   string
	sort     BookSortOrder
}

// Statuses returns the sorted, deduplicated statuses to match. Empty means any status.
func (f BookFilter) Statuses() []string {
	return f.statuses
}

// Genre returns the genre to match. Empty means any genre.
func (f BookFilter) Genre() string {
	return f.genre
}

// AuthorID returns the author to match. uuid.Nil means any author.
func (f BookFilter) AuthorID() uuid.UUID {
	return f.authorID
}

// HasAuthor reports whether the filter is restricted to one author.
func (f BookFilter) HasAuthor() bool {
	return f.authorID != uuid.Nil
}

// Search returns the trimmed search term. Empty means no search restriction.
func (f BookFilter) Search() string {
	return f.search
}

// Sort returns the requested ordering.
func (f BookFilter) Sort() BookSortOrder {
	return f.sort
}

// MatchesSearch reports whether any of the given values contains the search term, case-insensitively.
func (f BookFilter) MatchesSearch(values ...string) bool {
	if f.search == "" {
		return true
	}

	needle := strings.ToLower(f.search)

	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}

	return false
}

/***** BookFilterBuilder *****/

// BookFilterBuilder builds a BookFilter.
//
// It sanitizes its input:
//   - empty statuses are removed, the rest is sorted and deduplicated
//   - the genre and the search term are trimmed
//   - an unknown sort order falls back to SortByCreation
type BookFilterBuilder struct {
	filter BookFilter
}

// BuildBookFilter starts a new BookFilter that matches every book.
func BuildBookFilter() BookFilterBuilder {
	return BookFilterBuilder{filter: BookFilter{sort: SortByCreation}}
}

// WithStatus restricts the filter to books in any of the given statuses.
func (b BookFilterBuilder) WithStatus(status string, statuses ...string) BookFilterBuilder {
	all := append([]string{status}, statuses...)
	all = slices.DeleteFunc(all, func(s string) bool { return s == "" })
	all = append(all, b.filter.statuses...)
	slices.Sort(all)
	b.filter.statuses = slices.Compact(all)

	return b
}

// WithGenre restricts the filter to a genre.
func (b BookFilterBuilder) WithGenre(genre string) BookFilterBuilder {
	b.filter.genre = strings.TrimSpace(genre)

	return b
}

// ByAuthor restricts the filter to books listed by one user.
func (b BookFilterBuilder) ByAuthor(authorID uuid.UUID) BookFilterBuilder {
	b.filter.authorID = authorID

	return b
}

// Searching restricts the filter to books whose name or author username contains the term.
func (b BookFilterBuilder) Searching(term string) BookFilterBuilder {
	b.filter.search = strings.TrimSpace(term)

	return b
}

// SortedBy sets the ordering of the results.
func (b BookFilterBuilder) SortedBy(order BookSortOrder) BookFilterBuilder {
	switch order {
	case SortByPriceAsc, SortByPriceDesc, SortByCreation:
		b.filter.sort = order
	default:
		b.filter.sort = SortByCreation
	}

	return b
}

// Finalize returns the built BookFilter.
func (b BookFilterBuilder) Finalize() BookFilter {
	return b.filter
}
