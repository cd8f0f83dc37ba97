package session_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heliosip/countryrules/session"
	"github.com/heliosip/countryrules/shared/shell/config"
	"github.com/heliosip/countryrules/testutil/helper"
)

func Test_Open_SQLite(t *testing.T) {
	// arrange
	cfg := givenSQLiteConfig(t)
	logSpy := helper.NewLogHandlerSpy(false)

	// act
	s, err := session.Open(context.Background(), cfg, session.Credentials{}, session.WithLogger(slog.New(logSpy)))

	// assert
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	id, err := uuid.Parse(s.ID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.Equal(t, config.AdapterSQLite, s.Adapter())

	store, err := s.RuleStore()
	require.NoError(t, err)
	snapshot, err := store.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snapshot.Rules, 5)

	assert.True(t, logSpy.HasInfoLogWithMessage("rule database session opened").WithAttribute("session_id").Assert())
}

func Test_Open_SessionsHaveDistinctIDs(t *testing.T) {
	cfg := givenSQLiteConfig(t)

	first, err := session.Open(context.Background(), cfg, session.Credentials{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = first.Close() })
	second, err := session.Open(context.Background(), cfg, session.Credentials{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })

	assert.NotEqual(t, first.ID(), second.ID())
}

func Test_Close_IsIdempotent(t *testing.T) {
	// arrange
	s, err := session.Open(context.Background(), givenSQLiteConfig(t), session.Credentials{})
	require.NoError(t, err)

	// act
	firstErr := s.Close()
	secondErr := s.Close()

	// assert
	assert.NoError(t, firstErr)
	assert.NoError(t, secondErr)
	_, err = s.RuleStore()
	assert.ErrorIs(t, err, session.ErrSessionClosed)
}

func Test_Open_MissingCredentials(t *testing.T) {
	testCases := []struct {
		name  string
		creds session.Credentials
	}{
		{name: "no username", creds: session.Credentials{Password: "secret"}},
		{name: "no password", creds: session.Credentials{Username: "qa"}},
		{name: "nothing", creds: session.Credentials{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := session.Open(context.Background(), config.Default(), tc.creds)

			assert.ErrorIs(t, err, session.ErrMissingCredentials)
		})
	}
}

func Test_Open_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Database.Adapter = "odbc"

	_, err := session.Open(context.Background(), cfg, session.Credentials{Username: "qa", Password: "secret"})

	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func Test_Open_MissingSQLiteFile(t *testing.T) {
	// arrange
	cfg := config.Default()
	cfg.Database.Adapter = config.AdapterSQLite
	cfg.Database.Path = t.TempDir() + "/missing/rules.db"

	// act
	_, err := session.Open(context.Background(), cfg, session.Credentials{})

	// assert
	assert.ErrorIs(t, err, session.ErrOpeningSessionFailed)
}

func Test_Open_UnreachableDatabaseDoesNotLogCredentials(t *testing.T) {
	// arrange
	cfg := config.Default()
	cfg.Database.Adapter = config.AdapterSQL
	cfg.Database.Host = "127.0.0.1"
	cfg.Database.Port = 1
	cfg.Database.SSLMode = "disable"
	logSpy := helper.NewLogHandlerSpy(false)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// act
	_, err := session.Open(ctx, cfg, session.Credentials{Username: "qa", Password: "s3cr3t-pw"},
		session.WithContextualLogger(slog.New(logSpy)))

	// assert
	require.ErrorIs(t, err, session.ErrOpeningSessionFailed)
	assert.True(t, logSpy.HasErrorLogWithMessage("opening rule database session failed").WithAttribute("adapter").Assert())
	assert.False(t, logSpy.ContainsText("s3cr3t-pw"))
	assert.NotContains(t, err.Error(), "s3cr3t-pw")
}

func givenSQLiteConfig(t *testing.T) config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Database.Adapter = config.AdapterSQLite
	cfg.Database.Path = helper.GivenRuleDatabaseFile(t)

	return cfg
}
