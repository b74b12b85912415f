package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/growai/backend/internal/infrastructure/config"
	"github.com/growai/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 5, 6, 10, 0, 0, 0, time.UTC)

// setupTestDB opens an in-memory SQLite database with the schema applied.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return testNow },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// newMockDatabase creates a Database on a mocked postgres connection
func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return &Database{DB: gormDB}, mock, mockDB
}

func TestDialector(t *testing.T) {
	tests := []struct {
		driver string
		name   string
	}{
		{config.DriverPostgres, "postgres"},
		{"", "postgres"},
		{config.DriverMySQL, "mysql"},
		{config.DriverSQLite, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(&config.DatabaseConfig{Driver: tt.driver, Host: "localhost", Port: 5432, Path: ":memory:"})
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}

	t.Run("unknown driver", func(t *testing.T) {
		_, err := Dialector(&config.DatabaseConfig{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
	})
}

func TestNewDatabase_SQLite(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         "file::memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, WithNowFunc(func() time.Time { return testNow }))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.AutoMigrate())
	assert.True(t, db.DB.Migrator().HasTable("products"))
	assert.True(t, db.DB.Migrator().HasTable("sales"))
	assert.True(t, db.DB.Migrator().HasTable("dues"))
	assert.NoError(t, db.Ping())

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestDatabase_Ping(t *testing.T) {
	db, mock, mockDB := newMockDatabase(t)
	defer mockDB.Close()

	assert.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_Close(t *testing.T) {
	db, mock, _ := newMockDatabase(t)

	mock.ExpectClose()
	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
