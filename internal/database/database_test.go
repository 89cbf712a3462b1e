package database

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypefeed/internal/config"
)

func openMemory(t *testing.T) *DB {
	t.Helper()

	db, err := Open(config.DriverSQLite, "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDB() })

	return db
}

func TestCreateSchema_Idempotent(t *testing.T) {
	db := openMemory(t)

	require.NoError(t, db.CreateSchema())
	require.NoError(t, db.CreateSchema())

	var tables []string
	err := db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('users', 'posts', 'hypes') ORDER BY name`)
	require.NoError(t, err)
	assert.Equal(t, []string{"hypes", "posts", "users"}, tables)
}

func TestSchema_Constraints(t *testing.T) {
	db := openMemory(t)
	require.NoError(t, db.CreateSchema())

	_, err := db.Exec(`INSERT INTO users (username, password) VALUES ('ana', 'Abc12!')`)
	require.NoError(t, err)

	t.Run("duplicate username", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO users (username, password) VALUES ('ana', 'other')`)
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))
		assert.False(t, IsForeignKeyViolation(err))
	})

	t.Run("username is case sensitive", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO users (username, password) VALUES ('Ana', 'x')`)
		assert.NoError(t, err)
	})

	t.Run("post for unknown author", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO posts (author_id, content, created_at) VALUES (999, 'hi', 1)`)
		require.Error(t, err)
		assert.True(t, IsForeignKeyViolation(err))
	})

	t.Run("duplicate hype", func(t *testing.T) {
		_, err := db.Exec(`INSERT INTO posts (author_id, content, created_at) VALUES (1, 'hello', 1)`)
		require.NoError(t, err)
		insert := `INSERT INTO hypes (user_id, post_id) SELECT 1, id FROM posts WHERE content = 'hello'`
		_, err = db.Exec(insert)
		require.NoError(t, err)

		_, err = db.Exec(insert)
		require.Error(t, err)
		assert.True(t, IsUniqueViolation(err))

		var count int
		require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM hypes`))
		assert.Equal(t, 1, count)
	})
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		unique bool
		fk     bool
	}{
		{name: "nil", err: nil},
		{name: "pq unique", err: &pq.Error{Code: "23505"}, unique: true},
		{name: "pq fk", err: &pq.Error{Code: "23503"}, fk: true},
		{name: "pgx unique wrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), unique: true},
		{name: "pgx fk", err: &pgconn.PgError{Code: "23503"}, fk: true},
		{name: "message unique", err: errors.New("pq: duplicate key value violates unique constraint"), unique: true},
		{name: "message fk", err: errors.New("FOREIGN KEY constraint failed"), fk: true},
		{name: "other", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.unique, IsUniqueViolation(tt.err))
			assert.Equal(t, tt.fk, IsForeignKeyViolation(tt.err))
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := config.DB{
		SQLitePath: "feed.db",
		DbHOST:     "db",
		DbPORT:     "5432",
		DbUSER:     "u",
		DbPASSWORD: "p",
		DbNAME:     "hypefeed",
		DbSSLMODE:  "disable",
	}

	cfg.Driver = config.DriverSQLite
	assert.Contains(t, DSN(cfg), "file:feed.db?")
	assert.Contains(t, DSN(cfg), "foreign_keys(1)")

	cfg.Driver = config.DriverPostgres
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=hypefeed sslmode=disable", DSN(cfg))

	cfg.Driver = config.DriverPgx
	assert.Equal(t, "postgres://u:p@db:5432/hypefeed?sslmode=disable", DSN(cfg))
}

func TestHealthCheck(t *testing.T) {
	db := openMemory(t)
	assert.NoError(t, db.HealthCheck())

	var empty *DB
	assert.Error(t, empty.HealthCheck())
}

func TestConnectDB(t *testing.T) {
	t.Run("sqlite in memory", func(t *testing.T) {
		db, err := ConnectDB(&config.Config{
			DB: config.DB{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
		})
		require.NoError(t, err)
		defer db.CloseDB()

		var count int
		require.NoError(t, db.Get(&count, `SELECT COUNT(*) FROM users`))
		assert.Zero(t, count)
	})

	t.Run("retries until the deadline", func(t *testing.T) {
		_, err := ConnectDB(&config.Config{
			DB: config.DB{Driver: "no-such-driver", ConnectTimeout: 300 * time.Millisecond},
		})
		assert.Error(t, err)
	})
}
