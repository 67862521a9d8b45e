package postgresengine

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/store"
	"github.com/AntonStoeckl/bookstore/store/postgresengine/internal/adapters"
)

const (
	operationInsertBook = "insert_book"
	operationGetBook    = "get_book"
	operationQueryBooks = "query_books"
	operationUpdateBook = "update_book"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// InsertBook stores a new book listing.
func (s Store) InsertBook(ctx context.Context, book store.BookRecord) error {
	ctx, observer := s.startOperation(ctx, operationInsertBook)

	sqlQuery, args, err := s.toSQL(s.buildInsertBook(book))
	if err == nil {
		_, err = s.runExec(ctx, s.db, operationInsertBook, sqlQuery, args)
	}

	return observer.finish(err, 1)
}

// GetBook returns the book with the given ID, in any status, or store.ErrNotFound.
func (s Store) GetBook(ctx context.Context, bookID uuid.UUID) (store.BookRecord, error) {
	ctx, observer := s.startOperation(ctx, operationGetBook)

	books, err := s.selectBooks(ctx, operationGetBook, s.selectBooksDataset().Where(qualified(aliasBook, colID).Eq(bookID.String())))
	if err == nil && len(books) == 0 {
		err = store.ErrNotFound
	}

	if err != nil {
		return store.BookRecord{}, observer.finish(err, 0)
	}

	return books[0], observer.finish(nil, 1)
}

// QueryBooks returns the books matching the filter in the order the filter requests.
func (s Store) QueryBooks(ctx context.Context, filter store.BookFilter) (store.BookRecords, error) {
	ctx, observer := s.startOperation(ctx, operationQueryBooks)

	books, err := s.selectBooks(ctx, operationQueryBooks, s.buildQueryBooks(filter))
	if err != nil {
		return nil, observer.finish(err, 0)
	}

	return books, observer.finish(nil, len(books))
}

// UpdateBook overwrites the name, price, and genre of an existing book.
// The status is never touched here, it only changes through PlaceOrder.
func (s Store) UpdateBook(ctx context.Context, book store.BookRecord) error {
	ctx, observer := s.startOperation(ctx, operationUpdateBook)

	update := s.builder().
		Update(s.table(tableBooks)).
		Set(goqu.Record{colName: book.Name, colPrice: book.Price, colGenre: book.Genre}).
		Where(goqu.C(colID).Eq(book.ID.String())).
		Prepared(true)

	sqlQuery, args, err := s.toSQL(update)
	if err != nil {
		return observer.finish(err, 0)
	}

	rowsAffected, err := s.runExec(ctx, s.db, operationUpdateBook, sqlQuery, args)
	if err == nil && rowsAffected == 0 {
		err = store.ErrNotFound
	}

	return observer.finish(err, int(rowsAffected))
}

func (s Store) buildInsertBook(book store.BookRecord) *goqu.InsertDataset {
	return s.builder().
		Insert(s.table(tableBooks)).
		Rows(goqu.Record{
			colID:        book.ID.String(),
			colName:      book.Name,
			colPrice:     book.Price,
			colGenre:     book.Genre,
			colStatus:    book.Status,
			colAuthorID:  book.AuthorID.String(),
			colCreatedAt: book.CreatedAt,
		}).
		Prepared(true)
}

// selectBooksDataset selects books joined with their author's username.
func (s Store) selectBooksDataset() *goqu.SelectDataset {
	return s.builder().
		From(s.table(tableBooks).As(aliasBook)).
		Join(s.table(tableUsers).As(aliasUser), goqu.On(qualified(aliasUser, colID).Eq(qualified(aliasBook, colAuthorID)))).
		Select(
			qualified(aliasBook, colID),
			qualified(aliasBook, colName),
			qualified(aliasBook, colPrice),
			qualified(aliasBook, colGenre),
			qualified(aliasBook, colStatus),
			qualified(aliasBook, colAuthorID),
			qualified(aliasUser, colUsername),
			qualified(aliasBook, colCreatedAt),
		).
		Prepared(true)
}

func (s Store) buildQueryBooks(filter store.BookFilter) *goqu.SelectDataset {
	ds := s.selectBooksDataset()

	if statuses := filter.Statuses(); len(statuses) > 0 {
		ds = ds.Where(qualified(aliasBook, colStatus).In(statuses))
	}

	if filter.Genre() != "" {
		ds = ds.Where(qualified(aliasBook, colGenre).Eq(filter.Genre()))
	}

	if filter.HasAuthor() {
		ds = ds.Where(qualified(aliasBook, colAuthorID).Eq(filter.AuthorID().String()))
	}

	if filter.Search() != "" {
		pattern := "%" + likeEscaper.Replace(filter.Search()) + "%"
		ds = ds.Where(goqu.Or(
			qualified(aliasBook, colName).ILike(pattern),
			qualified(aliasUser, colUsername).ILike(pattern),
		))
	}

	switch filter.Sort() {
	case store.SortByPriceAsc:
		ds = ds.Order(qualified(aliasBook, colPrice).Asc())
	case store.SortByPriceDesc:
		ds = ds.Order(qualified(aliasBook, colPrice).Desc())
	}

	return ds.OrderAppend(qualified(aliasBook, colCreatedAt).Asc(), qualified(aliasBook, colID).Asc())
}

func (s Store) selectBooks(ctx context.Context, action string, ds *goqu.SelectDataset) (store.BookRecords, error) {
	sqlQuery, args, err := s.toSQL(ds)
	if err != nil {
		return nil, err
	}

	rows, err := s.runQuery(ctx, s.db, action, sqlQuery, args)
	if err != nil {
		return nil, err
	}

	return scanAll(s, rows, scanBook)
}

func scanBook(rows adapters.DBRows) (store.BookRecord, error) {
	var book store.BookRecord

	err := rows.Scan(
		&book.ID,
		&book.Name,
		&book.Price,
		&book.Genre,
		&book.Status,
		&book.AuthorID,
		&book.AuthorUsername,
		&book.CreatedAt,
	)

	return book, err
}

func qualified(alias, column string) exp.IdentifierExpression {
	return goqu.T(alias).Col(column)
}
