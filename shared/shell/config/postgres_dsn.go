package config

import (
	"net/url"
	"strconv"
)

// PostgresDSN builds a postgres:// URL for the configured database. Username and password are escaped.
func PostgresDSN(db DatabaseConfig, username, password string) string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(username, password),
		Host:   db.Host + ":" + strconv.Itoa(db.Port),
		Path:   "/" + db.Name,
	}

	if db.SSLMode != "" {
		dsn.RawQuery = url.Values{"sslmode": []string{db.SSLMode}}.Encode()
	}

	return dsn.String()
}
