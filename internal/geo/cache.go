// SQLite-backed place cache. Nominatim's usage policy asks heavy users to
// cache; birth places repeat constantly while readings themselves are never
// stored.
package geo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Cache stores resolved places keyed by the raw query string.
type Cache struct {
	conn *sqlx.DB
}

// OpenCache opens or creates the cache database at path.
func OpenCache(path string) (*Cache, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	c := &Cache{conn: conn}
	if err := c.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}
	return c, nil
}

// Close closes the underlying connection.
func (c *Cache) Close() error {
	return c.conn.Close()
}

func (c *Cache) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS places (
		query TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lon REAL NOT NULL,
		tz TEXT NOT NULL,
		name TEXT NOT NULL,
		resolved_at TEXT NOT NULL
	);`
	_, err := c.conn.Exec(schema)
	return err
}

type placeRow struct {
	Query      string  `db:"query"`
	Lat        float64 `db:"lat"`
	Lon        float64 `db:"lon"`
	TZ         string  `db:"tz"`
	Name       string  `db:"name"`
	ResolvedAt string  `db:"resolved_at"`
}

// Get returns a cached fix for the query, if any.
func (c *Cache) Get(query string) (*Fix, bool) {
	var row placeRow
	err := c.conn.Get(&row, `SELECT * FROM places WHERE query = ?`, query)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			// Treat cache trouble as a miss; the live lookup still runs.
			return nil, false
		}
		return nil, false
	}
	return &Fix{Lat: row.Lat, Lon: row.Lon, Timezone: row.TZ, Place: row.Name}, true
}

// Put stores a resolved fix for the query.
func (c *Cache) Put(query string, fix *Fix) error {
	_, err := c.conn.Exec(
		`INSERT OR REPLACE INTO places (query, lat, lon, tz, name, resolved_at) VALUES (?, ?, ?, ?, ?, ?)`,
		query, fix.Lat, fix.Lon, fix.Timezone, fix.Place, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert place: %w", err)
	}
	return nil
}
