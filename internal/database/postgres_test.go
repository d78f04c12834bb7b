package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	dbdriver "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	src "github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct{ upErr, downErr error }

func (f fakeMigrator) Up() error   { return f.upErr }
func (f fakeMigrator) Down() error { return f.downErr }

func restore() {
	pgxpoolNew = pgxpool.New
	sqlOpenDB = sql.Open
	postgresWithInstanceFn = postgres.WithInstance
	iofsNewFn = iofs.New
	migrateNewWithInstance = func(sourceName string, sourceDriver src.Driver, databaseName string, databaseDriver dbdriver.Driver) (migrateInstance, error) {
		m, err := migrate.NewWithInstance(sourceName, sourceDriver, databaseName, databaseDriver)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// stubMigrator 讓每個步驟都成功，最後回傳指定的 migrator
func stubMigrator(m migrateInstance) {
	sqlOpenDB = func(string, string) (*sql.DB, error) { return sql.Open("pgx", "") }
	postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, nil }
	iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, nil }
	migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) { return m, nil }
}

func TestNewPgxPool(t *testing.T) {
	t.Cleanup(restore)
	pgxpoolNew = func(context.Context, string) (*pgxpool.Pool, error) { return nil, errors.New("bad dsn") }
	_, err := NewPgxPool(context.Background(), "postgres://x")
	require.Error(t, err)

	pgxpoolNew = func(_ context.Context, url string) (*pgxpool.Pool, error) {
		require.Equal(t, "postgres://x", url)
		return &pgxpool.Pool{}, nil
	}
	db, err := NewPgxPool(context.Background(), "postgres://x")
	require.NoError(t, err)
	require.NotNil(t, db)
}

func TestMigratorSetupErrors(t *testing.T) {
	steps := []struct {
		name    string
		breakIt func()
	}{
		{"open", func() {
			sqlOpenDB = func(string, string) (*sql.DB, error) { return nil, errors.New("open") }
		}},
		{"driver", func() {
			postgresWithInstanceFn = func(*sql.DB, *postgres.Config) (dbdriver.Driver, error) { return nil, errors.New("drv") }
		}},
		{"source", func() {
			iofsNewFn = func(fs.FS, string) (src.Driver, error) { return nil, errors.New("src") }
		}},
		{"instance", func() {
			migrateNewWithInstance = func(string, src.Driver, string, dbdriver.Driver) (migrateInstance, error) {
				return nil, errors.New("mig")
			}
		}},
	}
	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			t.Cleanup(restore)
			stubMigrator(fakeMigrator{})
			step.breakIt()
			require.Error(t, RunMigrations("url"))
			require.Error(t, RollbackAll("url"))
		})
	}
}

func TestRunMigrationsAndRollback(t *testing.T) {
	tests := []struct {
		name     string
		m        fakeMigrator
		upFail   bool
		downFail bool
	}{
		{name: "applied", m: fakeMigrator{}},
		{name: "no change", m: fakeMigrator{upErr: migrate.ErrNoChange, downErr: migrate.ErrNoChange}},
		{name: "dirty", m: fakeMigrator{upErr: errors.New("dirty"), downErr: errors.New("dirty")}, upFail: true, downFail: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(restore)
			stubMigrator(tc.m)
			require.Equal(t, tc.upFail, RunMigrations("url") != nil)
			require.Equal(t, tc.downFail, RollbackAll("url") != nil)
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	up, err := fs.ReadFile(migrationsFS, "migrations/000001_init_schema.up.sql")
	require.NoError(t, err)
	down, err := fs.ReadFile(migrationsFS, "migrations/000001_init_schema.down.sql")
	require.NoError(t, err)

	tables := []string{"users", "events", "tasks", "assignments", "activity_logs", "notifications", "feedback", "volunteer_checkins"}
	for _, table := range tables {
		require.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS "+table+" (")
		require.True(t, strings.Contains(string(down), table), "down migration drops %s", table)
	}
}
