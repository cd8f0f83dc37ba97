package config

import (
	"database/sql"

	_ "modernc.org/sqlite" // sqlite driver
)

// SQLiteDriverName is the database/sql driver name registered by modernc.org/sqlite.
const SQLiteDriverName = "sqlite"

// SQLiteConfig opens a local SQLite rule database in read-only mode.
func SQLiteConfig(path string) (*sql.DB, error) {
	db, err := sql.Open(SQLiteDriverName, "file:"+path+"?mode=ro")
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	return db, nil
}
