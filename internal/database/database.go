package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"hypefeed/internal/config"
)

type MethodsDB interface {
	CloseDB() error
	CreateSchema() error
	HealthCheck() error
	GetDB() *DB
}

type DB struct {
	*sqlx.DB
}

// DSN builds the driver specific connection string from config.
func DSN(cfg config.DB) string {
	switch cfg.Driver {
	case config.DriverSQLite:
		return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(3000)&_pragma=journal_mode(WAL)", cfg.SQLitePath)
	case config.DriverPgx:
		return fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			cfg.DbUSER, cfg.DbPASSWORD, cfg.DbHOST, cfg.DbPORT, cfg.DbNAME, cfg.DbSSLMODE,
		)
	default:
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DbHOST, cfg.DbPORT, cfg.DbUSER, cfg.DbPASSWORD, cfg.DbNAME, cfg.DbSSLMODE,
		)
	}
}

// Open connects with the given driver and tunes the pool for it.
func Open(driver, dsn string) (*DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == config.DriverSQLite {
		// one writer; an in-memory database lives only as long as its connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	return &DB{db}, nil
}

// ConnectDB opens the configured database, retrying with exponential
// backoff until DB.ConnectTimeout so the server can start alongside it.
func ConnectDB(cfg *config.Config) (*DB, error) {
	slog.Info("connecting to database", "driver", cfg.DB.Driver, "host", cfg.DB.DbHOST, "dbname", cfg.DB.DbNAME)

	var bo backoff.BackOff = &backoff.StopBackOff{}
	if cfg.DB.ConnectTimeout > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = 200 * time.Millisecond
		exp.MaxElapsedTime = cfg.DB.ConnectTimeout
		bo = exp
	}

	db, err := backoff.RetryNotifyWithData(
		func() (*DB, error) {
			return Open(cfg.DB.Driver, DSN(cfg.DB))
		},
		bo,
		func(err error, next time.Duration) {
			slog.Warn("database not ready, retrying", "error", err, "retry_in", next)
		},
	)
	if err != nil {
		return nil, err
	}

	if err := db.CreateSchema(); err != nil {
		db.Close()
		return nil, err
	}

	if err := db.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	slog.Info("database ready", "driver", cfg.DB.Driver)
	return db, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

// CreateSchema creates all tables and indexes if they are absent.
// Safe to call on every startup.
func (db *DB) CreateSchema() error {
	for _, stmt := range schemaFor(db.DriverName()) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}

func (db *DB) GetDB() *DB {
	return db
}
