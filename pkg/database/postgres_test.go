package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/database/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               gormLogger.Discard,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrations.Migrations, "*.sql")
	require.NoError(t, err)
	require.Equal(t, []string{"00001_create_users.sql", "00002_create_auth_sessions.sql"}, names)

	users, err := fs.ReadFile(migrations.Migrations, "00001_create_users.sql")
	require.NoError(t, err)
	require.Contains(t, string(users), "CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email")

	sessions, err := fs.ReadFile(migrations.Migrations, "00002_create_auth_sessions.sql")
	require.NoError(t, err)
	require.Contains(t, string(sessions), "idx_auth_sessions_token")
}

func TestMigrate_UsesEmbeddedDir(t *testing.T) {
	db, _ := newMockDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	var gotDir string
	gooseUpContext = func(ctx context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), db))
	require.Equal(t, ".", gotDir)
}

func TestMigrate_PropagatesError(t *testing.T) {
	db, _ := newMockDB(t)

	orig := gooseUpContext
	t.Cleanup(func() { gooseUpContext = orig })

	boom := errors.New("boom")
	gooseUpContext = func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return boom
	}

	require.ErrorIs(t, Migrate(context.Background(), db), boom)
}

func TestPinger(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectPing()
	require.NoError(t, NewPinger(db).Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	require.Error(t, NewPinger(db).Ping(context.Background()))
}
