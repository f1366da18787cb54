package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database holding profiles and friendships
type DB struct {
	conn *sql.DB
	Path string
}

// Schema creates the tables read by AllProfiles and AllFriendships
const Schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL,
	age INTEGER NOT NULL DEFAULT 0,
	gender TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS friendships (
	user_a TEXT NOT NULL,
	user_b TEXT NOT NULL,
	quality INTEGER NOT NULL,
	created_at INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (user_a, user_b)
);
`

// OpenDB opens (or creates) a SQLite database and applies the schema
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Single writer; WAL lets readers proceed alongside it
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}

	if _, err := conn.Exec(Schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &DB{conn: conn, Path: path}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

// Conn returns the underlying sql.DB for custom queries
func (d *DB) Conn() *sql.DB {
	return d.conn
}
