package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"todotimer/pkg/engine"
	"todotimer/pkg/model"
	"todotimer/pkg/utils"
)

// DefaultKey is the key the task collection is stored under
const DefaultKey = "todos"

// SQLStore keeps the task collection as one JSON value in the kv table
type SQLStore struct {
	db     *sql.DB
	driver string
	key    string
}

// NewSQLStore wraps an open connection. The schema must already exist.
func NewSQLStore(db *sql.DB, driver, key string) *SQLStore {
	if key == "" {
		key = DefaultKey
	}
	return &SQLStore{db: db, driver: driver, key: key}
}

// rebind rewrites ? placeholders as $n for postgres
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Load reads the collection. A missing key yields engine.ErrNoData.
func (s *SQLStore) Load() ([]model.Task, error) {
	var value string
	err := s.db.QueryRow(s.rebind("SELECT value FROM kv WHERE key = ?"), s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.key, err)
	}

	tasks, err := DecodeTasks([]byte(value))
	if err != nil {
		return nil, err
	}

	utils.Log("Loaded %d tasks from database", len(tasks))
	return tasks, nil
}

// Save overwrites the collection
func (s *SQLStore) Save(tasks []model.Task) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(s.rebind(
		`INSERT INTO kv (key, value, lastmodified) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, lastmodified = CURRENT_TIMESTAMP`),
		s.key, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.key, err)
	}

	utils.Log("Saved %d tasks", len(tasks))
	return nil
}

// EncodeTasks serializes a collection. A nil slice encodes as an empty array.
func EncodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.Marshal(tasks)
}

// DecodeTasks parses a serialized collection
func DecodeTasks(data []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	return tasks, nil
}
