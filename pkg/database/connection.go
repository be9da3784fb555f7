package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported storage drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverFile     = "file"
)

// ExpandPath expands a leading tilde to the user's home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return homeDir + path[1:], nil
}

// ConnectDB opens a database connection. For sqlite3 the dsn is a file path
// and its directory is created when missing.
func ConnectDB(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite:
		dbPath, err := ExpandPath(dsn)
		if err != nil {
			return nil, err
		}

		// Create the directory structure if it doesn't exist
		dbDir := filepath.Dir(dbPath)
		if dbDir != "." {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				return nil, err
			}
		}

		// SQLite will create the database file if it doesn't exist
		return sql.Open(DriverSQLite, dbPath)

	case DriverPostgres:
		db, err := sql.Open(DriverPostgres, dsn)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// EnsureSchema creates the key-value table if it doesn't exist
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			lastmodified TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}
