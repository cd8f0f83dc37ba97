// Package adapters provide database adapter implementations for the rule database engine.
//
// The engine talks to pgxpool.Pool, sql.DB and sqlx.DB through the common DBAdapter interface.
// All statements are read-only and always carry their arguments separately from the SQL text.
package adapters
