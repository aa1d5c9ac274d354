package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// OpenSQLiteDB opens dbPath like NewSQLiteDB. A file that cannot be opened
// as a database is renamed to <path>.corrupt-<unix time> and a fresh
// database is created in its place, so the bot starts with empty
// preferences instead of refusing to start.
func OpenSQLiteDB(dbPath string, logger *zap.Logger) (*sql.DB, error) {
	db, err := NewSQLiteDB(dbPath)
	if err == nil {
		return db, nil
	}
	if _, statErr := os.Stat(dbPath); errors.Is(statErr, fs.ErrNotExist) {
		return nil, err
	}

	aside := fmt.Sprintf("%s.corrupt-%d", dbPath, time.Now().Unix())
	logger.Error("Preferences database is unreadable, starting with an empty one",
		zap.String("path", dbPath),
		zap.String("moved_to", aside),
		zap.Error(err))
	if renameErr := os.Rename(dbPath, aside); renameErr != nil {
		return nil, fmt.Errorf("failed to move unreadable database aside: %w", renameErr)
	}
	return NewSQLiteDB(dbPath)
}

func createTables(db *sql.DB) error {
	// One row per user, columns mirror the playground request
	userPreferencesTable := `
	CREATE TABLE IF NOT EXISTS user_preferences (
		telegram_id INTEGER PRIMARY KEY,
		backtrace INTEGER NOT NULL DEFAULT 0,
		channel TEXT NOT NULL DEFAULT 'stable',
		crate_type TEXT NOT NULL DEFAULT 'bin',
		edition TEXT NOT NULL DEFAULT '2018',
		mode TEXT NOT NULL DEFAULT 'debug',
		tests INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := db.Exec(userPreferencesTable)
	if err != nil {
		return fmt.Errorf("failed to create user_preferences table: %w", err)
	}

	return nil
}
