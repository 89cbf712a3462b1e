package database

import "hypefeed/internal/config"

func schemaFor(driver string) []string {
	if driver == config.DriverSQLite {
		return sqliteSchema
	}
	return postgresSchema
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE CHECK (username <> ''),
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		author_id BIGINT NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC, id DESC)`,
	`CREATE TABLE IF NOT EXISTS hypes (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		post_id BIGINT NOT NULL REFERENCES posts(id),
		UNIQUE (user_id, post_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_hypes_post_id ON hypes(post_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE CHECK (username <> ''),
		password TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		author_id INTEGER NOT NULL REFERENCES users(id),
		content TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC, id DESC)`,
	`CREATE TABLE IF NOT EXISTS hypes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users(id),
		post_id INTEGER NOT NULL REFERENCES posts(id),
		UNIQUE (user_id, post_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_hypes_post_id ON hypes(post_id)`,
}
