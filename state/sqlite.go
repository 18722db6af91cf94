package state

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// stateKey is the single row the store uses; the table is key/value so the
// schema survives if more state ever needs to live alongside it.
const stateKey = "last_news"

// SQLiteStore keeps the last seen item in a SQLite key/value table. Useful
// when several tools share one metadata database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the state table if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Load reads the saved item. No row means nothing has been saved yet and is
// not an error.
func (s *SQLiteStore) Load() (*LastSeen, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM state WHERE key = ?", stateKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query state: %w", err)
	}

	var last LastSeen
	if err := json.Unmarshal([]byte(value), &last); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	return &last, nil
}

// Save writes the item, replacing any previous one.
func (s *SQLiteStore) Save(last LastSeen) error {
	value, err := json.Marshal(last)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	_, err = s.db.Exec("INSERT OR REPLACE INTO state (key, value) VALUES (?, ?)", stateKey, string(value))
	if err != nil {
		return fmt.Errorf("failed to update state: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
