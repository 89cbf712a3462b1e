package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"

	PasswordPlaintext = "plaintext"
	PasswordBcrypt    = "bcrypt"
)

type DB struct {
	Driver     string
	SQLitePath string
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
	// ConnectTimeout bounds how long startup keeps retrying the first connection.
	ConnectTimeout time.Duration
}

type Log struct {
	Level  string
	Format string
}

type Config struct {
	ServerPort     int
	DB             DB
	Log            Log
	PasswordScheme string
	// FeedDegradedEmpty keeps the historical behavior of answering ListFeed
	// store failures with an empty 200 array instead of an error.
	FeedDegradedEmpty bool
	StaticDir         string
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func LoadDB() DB {
	return DB{
		Driver:     getEnv("DB_DRIVER", DriverSQLite),
		SQLitePath: getEnv("SQLITE_PATH", "hypefeed.db"),
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "hypefeed"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),

		ConnectTimeout: parseDuration(getEnv("DB_CONNECT_TIMEOUT", "15s"), 15*time.Second),
	}
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvAsInt("SERVER_PORT", 8080),
		DB:         LoadDB(),
		Log: Log{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		PasswordScheme:    getEnv("PASSWORD_SCHEME", PasswordPlaintext),
		FeedDegradedEmpty: getEnvBool("FEED_DEGRADED_EMPTY", true),
		StaticDir:         getEnv("STATIC_DIR", ""),
		ReadTimeout:       parseDuration(getEnv("READ_TIMEOUT", "10s"), 10*time.Second),
		WriteTimeout:      parseDuration(getEnv("WRITE_TIMEOUT", "30s"), 30*time.Second),
	}
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres, DriverPgx:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DB.Driver)
	}

	switch c.PasswordScheme {
	case PasswordPlaintext, PasswordBcrypt:
	default:
		return fmt.Errorf("unknown PASSWORD_SCHEME %q", c.PasswordScheme)
	}

	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort)
	}

	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (l Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
