package rulestore

import "errors"

var (
	// ErrDataAccess marks every failure of the external rule database. It is always joined with a more specific error.
	ErrDataAccess = errors.New("rule database access failed")

	// ErrNilDatabaseConnection is returned when an engine is constructed without a database connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyTableNameSupplied is returned when a table name option is empty.
	ErrEmptyTableNameSupplied = errors.New("empty table name supplied")

	// ErrBuildingQueryFailed is returned when a SQL statement could not be built.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrQueryingRulesFailed is returned when the database rejects a query.
	ErrQueryingRulesFailed = errors.New("querying rules failed")

	// ErrScanningDBRowFailed is returned when a result row has an unexpected shape.
	ErrScanningDBRowFailed = errors.New("scanning db row failed")
)

// ErrUnsupportedDialect is returned when an engine is configured with a SQL dialect it cannot build statements for.
var ErrUnsupportedDialect = errors.New("unsupported sql dialect")
