// Package cache persists content hashes between runs so unchanged files
// never get re-read. Hashing a large vault is the slow part of
// deduplication; sizes and modification times decide when a stored hash is
// still trustworthy.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/crypdick/obsidian-tools/internal/sqlutil"
	"github.com/crypdick/obsidian-tools/internal/vault"
)

// CurrentVersion is the cache schema version. Opening a cache written by a
// different version discards it and starts fresh; a hash cache is always
// safe to rebuild.
const CurrentVersion = 1

// Cache is a content-hash store backed by SQLite.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the hash cache for a vault, stored under
// .obsidian-tools/cache.db. Incompatible or corrupted caches are removed
// and recreated.
func Open(root string) (*Cache, error) {
	dir := filepath.Join(root, ".obsidian-tools")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .obsidian-tools directory: %w", err)
	}
	dbPath := filepath.Join(dir, "cache.db")

	if _, err := os.Stat(dbPath); err == nil {
		db, err := sql.Open("sqlite", dbPath)
		if err == nil {
			if compatibleVersion(db) {
				c := &Cache{db: db}
				if err := c.initialize(); err != nil {
					db.Close()
					return nil, err
				}
				return c, nil
			}
			db.Close()
		}
		if err := removeDatabaseFiles(dbPath); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open hash cache: %w", err)
	}
	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// OpenInMemory opens an in-memory cache (for testing).
func OpenInMemory() (*Cache, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	c := &Cache{db: db}
	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the cache.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS hashes (
			rel_path TEXT PRIMARY KEY,
			size INTEGER NOT NULL,
			mtime_ns INTEGER NOT NULL,
			hash TEXT NOT NULL
		);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize hash cache schema: %w", err)
	}
	_, err := c.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", CurrentVersion))
	if err != nil {
		return fmt.Errorf("failed to set hash cache version: %w", err)
	}
	return nil
}

func compatibleVersion(db *sql.DB) bool {
	var version string
	err := db.QueryRow(`SELECT value FROM meta WHERE key = 'version'`).Scan(&version)
	if err != nil {
		return false
	}
	return version == fmt.Sprintf("%d", CurrentVersion)
}

func removeDatabaseFiles(dbPath string) error {
	paths := []string{dbPath, dbPath + "-wal", dbPath + "-shm"}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

// Lookup returns the stored hash for a file when its size and modification
// time still match. Any cache problem is a miss, never an error.
func (c *Cache) Lookup(f vault.File) (string, bool) {
	var hash string
	err := c.db.QueryRow(
		`SELECT hash FROM hashes WHERE rel_path = ? AND size = ? AND mtime_ns = ?`,
		f.RelPath, f.Size, f.ModTime.UnixNano(),
	).Scan(&hash)
	if err != nil {
		return "", false
	}
	return hash, true
}

// Store records the hash for a file along with the metadata that validates
// it.
func (c *Cache) Store(f vault.File, hash string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO hashes (rel_path, size, mtime_ns, hash) VALUES (?, ?, ?, ?)`,
		f.RelPath, f.Size, f.ModTime.UnixNano(), hash,
	)
	return err
}

// Prune drops entries for files no longer present in the scan. Returns the
// number of rows removed.
func (c *Cache) Prune(current map[string]bool) (int, error) {
	rows, err := c.db.Query(`SELECT rel_path FROM hashes`)
	if err != nil {
		return 0, err
	}
	known, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (string, error) {
		var rel string
		err := rows.Scan(&rel)
		return rel, err
	})
	if err != nil {
		return 0, err
	}

	var stale []string
	for _, rel := range known {
		if !current[rel] {
			stale = append(stale, rel)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	placeholders, args := sqlutil.InClauseArgs(stale)
	if _, err := c.db.Exec(`DELETE FROM hashes WHERE rel_path IN (`+placeholders+`)`, args...); err != nil {
		return 0, err
	}
	return len(stale), nil
}
