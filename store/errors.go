package store

import "errors"

// ErrNilDatabaseConnection is returned when a nil database handle is supplied to an engine constructor.
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

// ErrEmptySchemaName is returned when an empty schema name is supplied.
var ErrEmptySchemaName = errors.New("empty schema name supplied")

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConcurrencyConflict is returned when a conditional write affected no rows
// because the state it was conditioned on changed in the meantime.
var ErrConcurrencyConflict = errors.New("concurrency error, no rows were affected")

// ErrDuplicateKey is returned when an insert violates a uniqueness constraint.
var ErrDuplicateKey = errors.New("duplicate key")

var (
	// ErrBuildingQueryFailed is returned when goqu fails to render a statement.
	ErrBuildingQueryFailed = errors.New("building the sql statement failed")

	// ErrQueryingFailed is returned when a select statement fails.
	ErrQueryingFailed = errors.New("querying the database failed")

	// ErrExecFailed is returned when an insert, update or delete statement fails.
	ErrExecFailed = errors.New("executing the sql statement failed")

	// ErrScanningDBRowFailed is returned when a row can't be scanned into a record.
	ErrScanningDBRowFailed = errors.New("scanning the db row failed")

	// ErrRowsIterationFailed is returned when the driver reports an error after iterating rows.
	ErrRowsIterationFailed = errors.New("iterating the db rows failed")

	// ErrTransactionFailed is returned when beginning or committing a transaction fails.
	ErrTransactionFailed = errors.New("database transaction failed")
)
