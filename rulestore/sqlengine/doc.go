// Package sqlengine provides read-only access to the rule database.
//
// It loads rule definitions, outcome and condition links and the jurisdiction and matter-type master
// data through pgx.Pool, sql.DB or sqlx.DB. Every statement is built with goqu in prepared mode, so
// user-supplied values such as jurisdiction names are always bound as parameters.
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := sqlengine.NewRuleStoreFromPGXPool(db)
//
//	// Local SQLite rule database with logging
//	store, _ := sqlengine.NewRuleStoreFromSQLDB(
//		sqliteDB,
//		sqlengine.WithDialect(sqlengine.DialectSQLite),
//		sqlengine.WithLogger(slog.Default()),
//	)
//
//	snapshot, _ := store.LoadSnapshot(ctx)
package sqlengine
