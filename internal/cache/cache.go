// Package cache keeps the last good station and broadcast lists in SQLite so
// a failed fetch can still show something.
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Kinds of cached lists.
const (
	KindStations   = "stations"
	KindBroadcasts = "broadcasts"
)

// Cache stores lists keyed by kind and query. Reads and writes use separate
// handles; only the write handle may modify the database.
type Cache struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

// Open creates the database at dbPath if needed and prepares the schema.
func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	c := &Cache{writeDB: writeDB}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}

	readDB, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	c.readDB = readDB
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS lists (
			kind       TEXT NOT NULL,
			query      TEXT NOT NULL,
			payload    TEXT NOT NULL,
			fetched_at DATETIME NOT NULL,
			PRIMARY KEY (kind, query)
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

// Close releases both database handles.
func (c *Cache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	return errors.Join(errs...)
}

// Put stores items for (kind, query), replacing any earlier entry.
func (c *Cache) Put(kind, query string, items any) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s list: %w", kind, err)
	}
	_, err = c.writeDB.Exec(`
		INSERT INTO lists (kind, query, payload, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(kind, query) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`, kind, query, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storing %s list: %w", kind, err)
	}
	return nil
}

// Get decodes the cached list for (kind, query) into dest. The boolean is
// false when nothing is cached.
func (c *Cache) Get(kind, query string, dest any) (time.Time, bool, error) {
	var (
		payload   string
		fetchedAt time.Time
	)
	err := c.readDB.QueryRow(
		"SELECT payload, fetched_at FROM lists WHERE kind = ? AND query = ?", kind, query,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("reading %s list: %w", kind, err)
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return time.Time{}, false, fmt.Errorf("decoding %s list: %w", kind, err)
	}
	return fetchedAt, true, nil
}

// Prune removes entries older than maxAge.
func (c *Cache) Prune(maxAge time.Duration) (int64, error) {
	res, err := c.writeDB.Exec("DELETE FROM lists WHERE fetched_at < ?", time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("pruning lists: %w", err)
	}
	return res.RowsAffected()
}
