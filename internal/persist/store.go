package persist

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/rezi"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Cache is a sqlite-backed store of compiled TableSnapshots, keyed by the
// grammar hash they were built from. A snapshot's Rebuild method turns a
// Lookup hit back into an *automaton.Automaton and *table.Table, so a
// caller can skip rerunning CLOSURE/GOTO/LALR-merge/table assembly on an
// unchanged grammar entirely; cmd/lalrgen does exactly that, except when
// asked to dump per-state item listings, which a snapshot doesn't retain.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if necessary) a sqlite cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open table cache: %w", err)
	}

	const stmt = `CREATE TABLE IF NOT EXISTS table_snapshots (
		id TEXT NOT NULL PRIMARY KEY,
		grammar_hash TEXT NOT NULL UNIQUE,
		data BLOB NOT NULL,
		size_bytes INTEGER NOT NULL,
		created INTEGER NOT NULL
	);`
	if _, err := db.Exec(stmt); err != nil {
		db.Close()
		return nil, fmt.Errorf("init table cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached snapshot for grammarHash, if any.
func (c *Cache) Lookup(grammarHash string) (*TableSnapshot, bool, error) {
	row := c.db.QueryRow(`SELECT data FROM table_snapshots WHERE grammar_hash = ?`, grammarHash)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query table cache: %w", err)
	}

	snap := &TableSnapshot{}
	n, err := rezi.DecBinary(data, snap)
	if err != nil {
		return nil, false, fmt.Errorf("decode cached table snapshot: %w", err)
	}
	if n != len(data) {
		return nil, false, fmt.Errorf("cached table snapshot: consumed %d/%d bytes", n, len(data))
	}

	return snap, true, nil
}

// Store saves snap under its GrammarHash, replacing any existing entry for
// that hash.
func (c *Cache) Store(snap *TableSnapshot) error {
	data := rezi.EncBinary(snap)

	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Errorf("generate cache entry id: %w", err)
	}

	_, err = c.db.Exec(
		`INSERT INTO table_snapshots (id, grammar_hash, data, size_bytes, created)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(grammar_hash) DO UPDATE SET data = excluded.data, size_bytes = excluded.size_bytes, created = excluded.created`,
		id.String(), snap.GrammarHash, data, len(data), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store table snapshot: %w", err)
	}
	return nil
}

// Stat describes one cache entry for human-facing reporting. The CLI does
// not call Stats.
type Stat struct {
	GrammarHash string
	Size        string
	Age         string
}

// Stats lists every cached entry, formatted with go-humanize for byte size
// and relative age.
func (c *Cache) Stats() ([]Stat, error) {
	rows, err := c.db.Query(`SELECT grammar_hash, size_bytes, created FROM table_snapshots ORDER BY created DESC`)
	if err != nil {
		return nil, fmt.Errorf("list table cache entries: %w", err)
	}
	defer rows.Close()

	var stats []Stat
	for rows.Next() {
		var hash string
		var size int64
		var created int64
		if err := rows.Scan(&hash, &size, &created); err != nil {
			return nil, fmt.Errorf("scan table cache entry: %w", err)
		}
		stats = append(stats, Stat{
			GrammarHash: hash,
			Size:        humanize.Bytes(uint64(size)),
			Age:         humanize.Time(time.Unix(created, 0)),
		})
	}
	return stats, rows.Err()
}
