package session

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heliosip/countryrules/rulestore/sqlengine"
	"github.com/heliosip/countryrules/shared/shell/config"
)

const (
	logMsgSessionOpened = "rule database session opened"
	logMsgSessionClosed = "rule database session closed"
	logMsgOpenFailed    = "opening rule database session failed"

	logAttrSessionID = "session_id"
	logAttrAdapter   = "adapter"
	logAttrError     = "error"
)

var (
	// ErrMissingCredentials is returned when a Postgres session is opened without username or password.
	ErrMissingCredentials = errors.New("database username and password are required")

	// ErrOpeningSessionFailed is returned when the database cannot be reached.
	ErrOpeningSessionFailed = errors.New("opening rule database session failed")

	// ErrSessionClosed is returned when a closed session is used.
	ErrSessionClosed = errors.New("session is closed")
)

// Credentials authenticate a session against the rule database.
type Credentials struct {
	Username string
	Password string
}

// Validate checks that both username and password are set.
func (c Credentials) Validate() error {
	if c.Username == "" || c.Password == "" {
		return ErrMissingCredentials
	}

	return nil
}

// Session is an open connection to the rule database.
type Session struct {
	id        string
	adapter   string
	store     sqlengine.RuleStore
	release   func() error
	options   options
	closeOnce sync.Once
	closeErr  error
	mu        sync.RWMutex
	closed    bool
}

// Open connects to the configured rule database, verifies the connection and returns a session.
// Credentials are ignored for the sqlite adapter.
func Open(ctx context.Context, cfg config.Config, creds Credentials, opts ...Option) (*Session, error) {
	o := options{}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	adapter := cfg.Database.Adapter
	if adapter != config.AdapterSQLite {
		if err := creds.Validate(); err != nil {
			return nil, err
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Join(ErrOpeningSessionFailed, err)
	}

	storeOptions := append(o.storeOptions(), sqlengine.WithTableNames(cfg.Database.Tables.TableNames()))

	store, release, err := connect(ctx, cfg.Database, creds, storeOptions)
	if err != nil {
		o.logError(ctx, logMsgOpenFailed, logAttrAdapter, adapter, logAttrError, err.Error())
		return nil, errors.Join(ErrOpeningSessionFailed, err)
	}

	s := &Session{
		id:      id.String(),
		adapter: adapter,
		store:   store,
		release: release,
		options: o,
	}

	o.logInfo(ctx, logMsgSessionOpened, logAttrSessionID, s.id, logAttrAdapter, adapter)

	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Adapter returns the name of the adapter the session connected with.
func (s *Session) Adapter() string {
	return s.adapter
}

// RuleStore returns the session's rule store, or ErrSessionClosed after Close.
func (s *Session) RuleStore() (sqlengine.RuleStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return sqlengine.RuleStore{}, ErrSessionClosed
	}

	return s.store, nil
}

// Close releases the connection pool. Calling Close more than once returns the first result.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		s.closeErr = s.release()
		s.options.logInfo(context.Background(), logMsgSessionClosed, logAttrSessionID, s.id)
	})

	return s.closeErr
}

func connect(
	ctx context.Context,
	db config.DatabaseConfig,
	creds Credentials,
	storeOptions []sqlengine.Option,
) (sqlengine.RuleStore, func() error, error) {
	switch db.Adapter {
	case config.AdapterPGX:
		poolConfig, err := config.PostgresPGXPoolConfig(config.PostgresDSN(db, creds.Username, creds.Password))
		if err != nil {
			return sqlengine.RuleStore{}, nil, err
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return sqlengine.RuleStore{}, nil, err
		}

		if err = pool.Ping(ctx); err != nil {
			pool.Close()
			return sqlengine.RuleStore{}, nil, err
		}

		store, err := sqlengine.NewRuleStoreFromPGXPool(pool, storeOptions...)
		if err != nil {
			pool.Close()
			return sqlengine.RuleStore{}, nil, err
		}

		return store, func() error { pool.Close(); return nil }, nil

	case config.AdapterSQL:
		sqlDB, err := config.PostgresSQLDBConfig(config.PostgresDSN(db, creds.Username, creds.Password))
		if err != nil {
			return sqlengine.RuleStore{}, nil, err
		}

		return wrapSQLDB(ctx, sqlDB, storeOptions)

	case config.AdapterSQLX:
		sqlxDB, err := config.PostgresSQLXConfig(config.PostgresDSN(db, creds.Username, creds.Password))
		if err != nil {
			return sqlengine.RuleStore{}, nil, err
		}

		if err = sqlxDB.PingContext(ctx); err != nil {
			_ = sqlxDB.Close()
			return sqlengine.RuleStore{}, nil, err
		}

		return newStore(sqlxDB.Close, func() (sqlengine.RuleStore, error) {
			return sqlengine.NewRuleStoreFromSQLX(sqlxDB, storeOptions...)
		})

	default:
		sqlDB, err := config.SQLiteConfig(db.Path)
		if err != nil {
			return sqlengine.RuleStore{}, nil, err
		}

		return wrapSQLDB(ctx, sqlDB, append(storeOptions, sqlengine.WithDialect(sqlengine.DialectSQLite)))
	}
}

func wrapSQLDB(ctx context.Context, db *sql.DB, storeOptions []sqlengine.Option) (sqlengine.RuleStore, func() error, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return sqlengine.RuleStore{}, nil, err
	}

	return newStore(db.Close, func() (sqlengine.RuleStore, error) {
		return sqlengine.NewRuleStoreFromSQLDB(db, storeOptions...)
	})
}

func newStore(release func() error, build func() (sqlengine.RuleStore, error)) (sqlengine.RuleStore, func() error, error) {
	store, err := build()
	if err != nil {
		_ = release()
		return sqlengine.RuleStore{}, nil, err
	}

	return store, release, nil
}
