// Package integration runs the GrowAI stack against real PostgreSQL and
// Redis containers started with testcontainers. The tests are skipped
// with -short.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/growai/backend/internal/infrastructure/config"
	"github.com/growai/backend/internal/infrastructure/migration"
	"github.com/growai/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// TestDB is a migrated PostgreSQL database in a throwaway container
type TestDB struct {
	Database *persistence.Database
	Config   config.DatabaseConfig
	t        *testing.T
}

// NewTestDB starts PostgreSQL, applies migrations/ and opens a connection.
// The container is terminated on cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("growai_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg := config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		Host:         host,
		Port:         port.Int(),
		User:         "postgres",
		Password:     "postgres",
		DBName:       "growai_test",
		SSLMode:      "disable",
		MaxOpenConns: 10,
		MaxIdleConns: 2,
	}

	m, err := migration.NewFromURL(cfg.PostgresURL(), findMigrationsPath(t), zap.NewNop())
	require.NoError(t, err, "Failed to create migrator")
	require.NoError(t, m.Up(), "Failed to apply migrations")
	require.NoError(t, m.Close())

	database, err := persistence.NewDatabase(&cfg)
	require.NoError(t, err, "Failed to connect to database")
	t.Cleanup(func() { _ = database.Close() })

	return &TestDB{Database: database, Config: cfg, t: t}
}

// Truncate empties every table and resets the id sequences
func (tdb *TestDB) Truncate() {
	tdb.t.Helper()
	require.NoError(tdb.t, tdb.Database.DB.
		Exec("TRUNCATE TABLE sales, dues, products RESTART IDENTITY CASCADE").Error)
}

// NewTestRedis starts a Redis container and returns its connection settings
func NewTestRedis(t *testing.T) config.RedisConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	return config.RedisConfig{Host: host, Port: port.Int()}
}

// findMigrationsPath walks up from this file to the module's migrations directory
func findMigrationsPath(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok)

	dir := filepath.Dir(filename)
	for range 4 {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	t.Fatal("migrations directory not found")
	return ""
}
