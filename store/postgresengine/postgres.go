package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/bookstore/store"
	"github.com/AntonStoeckl/bookstore/store/postgresengine/internal/adapters"
)

const (
	defaultSchemaName = "public"
	dialectPostgres   = "postgres"

	tableUsers    = "users"
	tableProfiles = "profiles"
	tableBooks    = "books"
	tableOrders   = "orders"
	aliasBook     = "b"
	aliasUser     = "u"

	colID              = "id"
	colUsername        = "username"
	colCreatedAt       = "created_at"
	colUserID          = "user_id"
	colLanguage        = "language"
	colDisplayName     = "display_name"
	colEmail           = "email"
	colPhoneNumber     = "phone_number"
	colUpdatedAt       = "updated_at"
	colName            = "name"
	colPrice           = "price"
	colGenre           = "genre"
	colStatus          = "status"
	colAuthorID        = "author_id"
	colBookID          = "book_id"
	colCountry         = "country"
	colDeliveryAddress = "delivery_address"

	logMsgBuildQueryFailed    = "failed to build sql statement"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database statement execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgRollbackFailed      = "failed to roll back transaction"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "store operation: "
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrDurationMS         = "duration_ms"
	logAttrRows               = "rows"
	logAttrBookID             = "book_id"
	logAttrOperation          = "operation"
	logAttrStatus             = "status"
)

type (
	sqlQueryString    = string
	rowsAffectedInt64 = int64
)

// executor is satisfied by both the adapter and an open transaction.
type executor interface {
	Query(ctx context.Context, query string, args ...any) (adapters.DBRows, error)
	Exec(ctx context.Context, query string, args ...any) (adapters.DBResult, error)
}

// sqlBuilder is satisfied by all goqu datasets.
type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

// Store is the PostgreSQL storage engine for users, profiles, books, and orders.
type Store struct {
	db               adapters.DBAdapter
	schemaName       string
	logger           store.Logger
	metricsCollector store.MetricsCollector
	tracingCollector store.TracingCollector
	contextualLogger store.ContextualLogger
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, store.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary and a replica pgx Pool.
// Reads made with store.WithEventualConsistency go to the replica, everything else to the primary.
func NewStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, store.ErrNilDatabaseConnection
	}

	if replica == nil {
		return newStore(adapters.NewPGXAdapter(db), options)
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, store.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, store.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options)
}

func newStore(db adapters.DBAdapter, options []Option) (Store, error) {
	s := Store{
		db:         db,
		schemaName: defaultSchemaName,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// SchemaName returns the PostgreSQL schema the Store operates on.
func (s Store) SchemaName() string {
	return s.schemaName
}

func (s Store) table(name string) exp.IdentifierExpression {
	return goqu.S(s.schemaName).Table(name)
}

func (s Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// toSQL renders a goqu dataset in prepared mode.
func (s Store) toSQL(ds sqlBuilder) (sqlQueryString, []any, error) {
	sqlQuery, args, err := ds.ToSQL()
	if err != nil {
		s.logError(logMsgBuildQueryFailed, err)
		return "", nil, errors.Join(store.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, args, nil
}

// runQuery executes a select statement and returns the rows, logging the statement with its duration.
func (s Store) runQuery(
	ctx context.Context,
	db executor,
	action string,
	sqlQuery sqlQueryString,
	args []any,
) (adapters.DBRows, error) {

	start := time.Now()
	rows, queryErr := db.Query(ctx, sqlQuery, args...)
	s.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(store.ErrQueryingFailed, queryErr)
	}

	return rows, nil
}

// runExec executes an insert, update or delete statement and returns the number of affected rows.
// Unique constraint violations are reported as store.ErrDuplicateKey.
func (s Store) runExec(
	ctx context.Context,
	db executor,
	action string,
	sqlQuery sqlQueryString,
	args []any,
) (rowsAffectedInt64, error) {

	start := time.Now()
	result, execErr := db.Exec(ctx, sqlQuery, args...)
	s.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if execErr != nil {
		if adapters.IsUniqueViolation(execErr) {
			return 0, errors.Join(store.ErrDuplicateKey, execErr)
		}

		s.logError(logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)

		return 0, errors.Join(store.ErrExecFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, errors.Join(store.ErrExecFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// withinTx runs fn inside a transaction on the primary database.
// The transaction is rolled back when fn returns an error, and committed otherwise.
func (s Store) withinTx(ctx context.Context, fn func(tx adapters.DBTx) error) error {
	tx, beginErr := s.db.BeginTx(ctx)
	if beginErr != nil {
		s.logError(logMsgDBExecFailed, beginErr)
		return errors.Join(store.ErrTransactionFailed, beginErr)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			s.logWarn(logMsgRollbackFailed, logAttrError, rollbackErr.Error())
		}

		return err
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		s.logError(logMsgDBExecFailed, commitErr)
		return errors.Join(store.ErrTransactionFailed, commitErr)
	}

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (s Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// scanAll iterates rows and scans each one with scan.
func scanAll[T any](s Store, rows adapters.DBRows, scan func(rows adapters.DBRows) (T, error)) ([]T, error) {
	defer s.closeRows(rows)

	result := make([]T, 0)

	for rows.Next() {
		record, scanErr := scan(rows)
		if scanErr != nil {
			s.logError(logMsgScanRowFailed, scanErr)
			return nil, errors.Join(store.ErrScanningDBRowFailed, scanErr)
		}

		result = append(result, record)
	}

	if iterErr := rows.Err(); iterErr != nil {
		return nil, errors.Join(store.ErrRowsIterationFailed, iterErr)
	}

	return result, nil
}
