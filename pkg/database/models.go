package database

import (
	"database/sql"
	"fmt"

	"todotimer/pkg/engine"
)

// Options selects and configures a storage backend
type Options struct {
	Driver string // sqlite3, postgres or file
	DSN    string // file path for sqlite3 and file, connection string for postgres
	Key    string // kv key for SQL backends
}

// Backend is an open persister together with its cleanup
type Backend struct {
	engine.Persister
	db *sql.DB
}

// Close releases the underlying connection, if any
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Open connects to the configured backend and prepares its schema
func Open(opts Options) (*Backend, error) {
	switch opts.Driver {
	case DriverFile:
		fs, err := NewFileStore(opts.DSN)
		if err != nil {
			return nil, err
		}
		return &Backend{Persister: fs}, nil

	case DriverSQLite, DriverPostgres:
		db, err := ConnectDB(opts.Driver, opts.DSN)
		if err != nil {
			return nil, err
		}
		if err := EnsureSchema(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
		return &Backend{Persister: NewSQLStore(db, opts.Driver, opts.Key), db: db}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", opts.Driver)
	}
}
