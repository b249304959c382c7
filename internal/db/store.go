package db

import (
	"context"
	"fmt"
	"time"

	"infinite-experiment/logbook/internal/config"
	"infinite-experiment/logbook/internal/logging"
	gormModels "infinite-experiment/logbook/internal/models/gorm"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store owns the database handles. GORM serves model reads and writes,
// sqlx serves the raw aggregate queries.
type Store struct {
	ORM *gorm.DB
	SQL *sqlx.DB
}

// Open connects to the configured database and migrates the schema
func Open(cfg config.Database) (*Store, error) {
	var (
		store *Store
		err   error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		store, err = openPostgres(cfg.DSN())
	case config.DriverSQLite:
		store, err = OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// OpenSQLite opens a SQLite file (or ":memory:") and shares its pool with sqlx
func OpenSQLite(path string) (*Store, error) {
	orm, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite pool: %w", err)
	}
	// A single connection keeps writes serialized and keeps ":memory:" databases alive
	sqlDB.SetMaxOpenConns(1)

	return &Store{ORM: orm, SQL: sqlx.NewDb(sqlDB, "sqlite3")}, nil
}

func openPostgres(dsn string) (*Store, error) {
	var (
		sqlDB *sqlx.DB
		err   error
	)

	for i := 0; i < 10; i++ {
		sqlDB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}
		logging.Warn("Postgres not ready, retrying", "attempt", i+1, "error", err.Error())
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	orm, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to open postgres via gorm: %w", err)
	}

	return &Store{ORM: orm, SQL: sqlDB}, nil
}

// Migrate creates the flights and pilot_ranks tables if needed
func (s *Store) Migrate() error {
	if err := s.ORM.AutoMigrate(&gormModels.Flight{}, &gormModels.PilotRank{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	return s.SQL.PingContext(ctx)
}

// Close releases the underlying pool
func (s *Store) Close() error {
	return s.SQL.Close()
}
