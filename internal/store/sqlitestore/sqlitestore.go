// Package sqlitestore keeps durable scopes in a single SQLite database.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/Makepad-fr/contactbook/internal/store"
)

// DB owns the database handle shared by every scope.
type DB struct {
	db   *sql.DB
	path string
	mu   sync.RWMutex
}

// Open creates or opens the database at path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	d := &DB{db: db, path: path}
	if err := d.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the database file path.
func (d *DB) Path() string {
	return d.path
}

func (d *DB) initSchema() error {
	_, err := d.db.Exec(`
	CREATE TABLE IF NOT EXISTS records (
		scope TEXT NOT NULL,
		key   TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (scope, key)
	)`)
	return err
}

// Scope returns the named durable scope.
func (d *DB) Scope(name string) store.Durable {
	return &scope{db: d, name: name}
}

type scope struct {
	db   *DB
	name string
}

func (s *scope) Set(key, value string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	_, err := s.db.db.Exec(`
		INSERT INTO records (scope, key, value) VALUES (?, ?, ?)
		ON CONFLICT(scope, key) DO UPDATE SET value = excluded.value`,
		s.name, key, value)
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", s.name, key, err)
	}
	return nil
}

func (s *scope) Get(key string) (string, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	var v string
	err := s.db.db.QueryRow(`SELECT value FROM records WHERE scope = ? AND key = ?`, s.name, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s/%s: %w", s.name, key, err)
	}
	return v, nil
}

func (s *scope) Remove(key string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, err := s.db.db.Exec(`DELETE FROM records WHERE scope = ? AND key = ?`, s.name, key); err != nil {
		return fmt.Errorf("remove %s/%s: %w", s.name, key, err)
	}
	return nil
}

func (s *scope) Keys() ([]string, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	rows, err := s.db.db.Query(`SELECT key FROM records WHERE scope = ?`, s.name)
	if err != nil {
		return nil, fmt.Errorf("keys %s: %w", s.name, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
