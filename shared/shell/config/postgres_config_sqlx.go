package config

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLXConfig opens a *sqlx.DB for the given DSN with configured pool settings.
// The connection is not verified; callers ping it.
func PostgresSQLXConfig(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	configureSQLPool(db.DB)

	return db, nil
}
