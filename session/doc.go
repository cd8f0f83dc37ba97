// Package session manages credential-scoped connections to the rule database.
//
// A Session is opened with the user's credentials, owns its connection pool and must be closed
// by the caller. Credentials are only used to build the connection string; they are never stored
// on the session or logged.
package session
