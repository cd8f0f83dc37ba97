// Package config provides the configuration of the rule family analyzer and database connection helpers.
//
// Configuration is read from an optional YAML file and then overridden by RULES_* environment variables.
// The factory functions open Postgres connections through pgx.Pool, sql.DB or sqlx.DB, or a local
// SQLite rule database, with pre-configured pool settings.
//
// Credentials are never part of the configuration; they are supplied per session.
package config
