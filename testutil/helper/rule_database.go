package helper

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/heliosip/countryrules/rulestore/sqlengine"
)

// SQLiteDriverName is the database/sql driver name registered by modernc.org/sqlite.
const SQLiteDriverName = "sqlite"

const ruleDatabaseSchema = `
CREATE TABLE tblRuleDefination (
	ID INTEGER PRIMARY KEY,
	Activity TEXT,
	Active BOOLEAN,
	Jurisdiction TEXT,
	MatterType TEXT,
	DueDate TEXT,
	FinalDueDate TEXT,
	RuleType TEXT
);
CREATE TABLE tblOutcomes (
	ID INTEGER PRIMARY KEY AUTOINCREMENT,
	"Rule" INTEGER NOT NULL,
	Label TEXT,
	OutputType TEXT
);
CREATE TABLE tblConditions (
	ID INTEGER PRIMARY KEY AUTOINCREMENT,
	"Rule" INTEGER NOT NULL,
	Value TEXT
);
CREATE TABLE tblCountryMaster (
	ID INTEGER PRIMARY KEY,
	Name TEXT,
	isDirtyFlag BOOLEAN
);
CREATE TABLE tblMatterTypeMaster (
	ID INTEGER PRIMARY KEY,
	MaterType TEXT,
	isDirtyFlag BOOLEAN
);
`

// The seeded rule graph:
//
//	RF-00001: 100 -> 101 -> 102   (Germany/Austria, Patent)
//	RF-00002: 103                 (United States, Trademark)
//	RF-00003: 105                 (Austria, Design; consumes "Filed" but shares no pair with 100)
//
// Rule 104 is inactive, jurisdiction 99 and matter type 7 are dirty.
const ruleDatabaseSeed = `
INSERT INTO tblCountryMaster (ID, Name, isDirtyFlag) VALUES
	(1, 'United States', 0),
	(2, 'European Patent Office', 0),
	(3, 'WIPO', 0),
	(10, 'Germany', 0),
	(11, 'Austria', NULL),
	(99, 'Atlantis', 1);
INSERT INTO tblMatterTypeMaster (ID, MaterType, isDirtyFlag) VALUES
	(1, 'Patent', 0),
	(2, 'Trademark', 0),
	(3, 'Design', NULL),
	(7, 'Retired Type', 1);
INSERT INTO tblRuleDefination (ID, Activity, Active, Jurisdiction, MatterType, DueDate, FinalDueDate, RuleType) VALUES
	(100, 'File application', 1, '10', '1', 'add 1 month', 'add 2 months', 'Action'),
	(101, 'Request examination', 1, '10, 11', '1', 'add 2 weeks', 'add 6 months', 'Task'),
	(102, 'Respond to office action', 1, '10', '1', 'add 3 months', NULL, 'Action'),
	(103, 'Renew trademark', 1, '1', '2', 'add 10 days', NULL, 'Action'),
	(104, 'Withdrawn rule', 0, '10', '1', 'add 1 day', NULL, 'Action'),
	(105, 'Register design', 1, '11', '3', 'subtract 5 days', NULL, 'Task');
INSERT INTO tblOutcomes ("Rule", Label, OutputType) VALUES
	(100, 'Filed', 'Letter'),
	(101, 'Examination Requested', 'Task'),
	(102, 'Office Action Answered', 'Email'),
	(103, 'Renewed', 'Letter'),
	(104, 'Filed', 'Letter'),
	(105, NULL, 'Letter');
INSERT INTO tblConditions ("Rule", Value) VALUES
	(101, 'Filed'),
	(102, 'Examination Requested'),
	(104, 'Filed'),
	(105, 'Filed'),
	(103, NULL);
`

// GivenRuleDatabase opens an in-memory SQLite database with the rule schema and the seeded rule graph.
// The database is closed when the test ends.
func GivenRuleDatabase(t testing.TB) *sql.DB {
	t.Helper()

	db := GivenEmptyRuleDatabase(t)
	ExecRuleDatabaseSQL(t, db, ruleDatabaseSeed)

	return db
}

// GivenEmptyRuleDatabase opens an in-memory SQLite database with the rule schema and no rows.
func GivenEmptyRuleDatabase(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open(SQLiteDriverName, ":memory:")
	require.NoError(t, err, "error in arranging test data")

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	ExecRuleDatabaseSQL(t, db, ruleDatabaseSchema)

	return db
}

// GivenRuleDatabaseFile writes the schema and the seeded rule graph to a SQLite file in a temporary directory
// and returns its path.
func GivenRuleDatabaseFile(t testing.TB) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "rules.db")

	db, err := sql.Open(SQLiteDriverName, path)
	require.NoError(t, err, "error in arranging test data")

	ExecRuleDatabaseSQL(t, db, ruleDatabaseSchema)
	ExecRuleDatabaseSQL(t, db, ruleDatabaseSeed)
	require.NoError(t, db.Close(), "error in arranging test data")

	return path
}

// ExecRuleDatabaseSQL executes arbitrary statements against a test rule database.
func ExecRuleDatabaseSQL(t testing.TB, db *sql.DB, statements string) {
	t.Helper()

	_, err := db.ExecContext(context.Background(), statements)
	require.NoError(t, err, "error in arranging test data")
}

// GivenSQLiteRuleStore wraps db in a RuleStore using the SQLite dialect.
func GivenSQLiteRuleStore(t testing.TB, db *sql.DB, options ...sqlengine.Option) sqlengine.RuleStore {
	t.Helper()

	options = append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectSQLite)}, options...)
	store, err := sqlengine.NewRuleStoreFromSQLDB(db, options...)
	require.NoError(t, err, "error in arranging test data")

	return store
}

// GivenSQLiteRuleStoreFromSQLX wraps db in a sqlx.DB backed RuleStore using the SQLite dialect.
func GivenSQLiteRuleStoreFromSQLX(t testing.TB, db *sql.DB, options ...sqlengine.Option) sqlengine.RuleStore {
	t.Helper()

	options = append([]sqlengine.Option{sqlengine.WithDialect(sqlengine.DialectSQLite)}, options...)
	store, err := sqlengine.NewRuleStoreFromSQLX(sqlx.NewDb(db, SQLiteDriverName), options...)
	require.NoError(t, err, "error in arranging test data")

	return store
}
