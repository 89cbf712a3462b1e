package feed

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"hypefeed/internal/config"
	"hypefeed/internal/database"
	"hypefeed/internal/models"
)

const DefaultNamespace = "hypefeed"

const (
	keyCurrentUser = "currentUser"
	keyDarkMode    = "darkMode"
	keyHealth      = "health"
)

const storeSchema = `
	CREATE TABLE IF NOT EXISTS client_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)
`

// HealthRecord is the last health check seen by this client.
type HealthRecord struct {
	OK        bool  `json:"ok"`
	Timestamp int64 `json:"timestamp"`
}

// Store keeps client state that survives restarts in a small sqlite file.
// Every key is prefixed with the namespace so several clients can share
// one file without colliding.
type Store struct {
	db        *database.DB
	namespace string
}

func OpenStore(path, namespace string) (*Store, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	db, err := database.Open(config.DriverSQLite, fmt.Sprintf("file:%s?_pragma=busy_timeout(3000)", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open client state: %w", err)
	}

	if _, err := db.Exec(storeSchema); err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to create client state: %w", err)
	}

	return &Store{db: db, namespace: namespace}, nil
}

func (s *Store) Close() error {
	return s.db.CloseDB()
}

func (s *Store) key(name string) string {
	return s.namespace + "_" + name
}

// Identity returns the signed in user, or nil when nobody is.
func (s *Store) Identity() (*models.Identity, error) {
	var identity models.Identity
	found, err := s.get(keyCurrentUser, &identity)
	if err != nil || !found {
		return nil, err
	}
	return &identity, nil
}

func (s *Store) SetIdentity(identity models.Identity) error {
	return s.set(keyCurrentUser, identity)
}

func (s *Store) ClearIdentity() error {
	return s.delete(keyCurrentUser)
}

func (s *Store) DarkMode() (bool, error) {
	var dark bool
	_, err := s.get(keyDarkMode, &dark)
	return dark, err
}

func (s *Store) SetDarkMode(dark bool) error {
	return s.set(keyDarkMode, dark)
}

func (s *Store) Health() (*HealthRecord, error) {
	var record HealthRecord
	found, err := s.get(keyHealth, &record)
	if err != nil || !found {
		return nil, err
	}
	return &record, nil
}

func (s *Store) SetHealth(record HealthRecord) error {
	return s.set(keyHealth, record)
}

func (s *Store) get(name string, dst any) (bool, error) {
	var raw string
	err := s.db.Get(&raw, `SELECT value FROM client_state WHERE key = ?`, s.key(name))
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", s.key(name), err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("corrupt value for %s: %w", s.key(name), err)
	}
	return true, nil
}

func (s *Store) set(name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.key(name), err)
	}

	_, err = s.db.Exec(`
		INSERT INTO client_state (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, s.key(name), string(raw))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key(name), err)
	}
	return nil
}

func (s *Store) delete(name string) error {
	if _, err := s.db.Exec(`DELETE FROM client_state WHERE key = ?`, s.key(name)); err != nil {
		return fmt.Errorf("failed to delete %s: %w", s.key(name), err)
	}
	return nil
}
