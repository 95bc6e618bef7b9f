package history

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/model"
)

// SQLiteDriver is the database/sql driver name registered by modernc.org/sqlite
const SQLiteDriver = "sqlite"

const timestampLayout = time.RFC3339Nano

// SQLiteBackend stores one row per history entry
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the history database at path and migrates it
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open(SQLiteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// A single connection keeps ":memory:" databases consistent
	db.SetMaxOpenConns(1)

	b := &SQLiteBackend{db: db}
	if err := b.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

// Migrate runs all database migrations
func (b *SQLiteBackend) Migrate() error {
	const funcName = "SQLiteBackend.Migrate"
	logger.Debug("running history migrations", zap.String("function", funcName))

	migrations := []string{
		`CREATE TABLE IF NOT EXISTS download_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			quality TEXT NOT NULL,
			format TEXT NOT NULL,
			status TEXT NOT NULL,
			executed_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_download_history_executed_at ON download_history(executed_at)`,
		`CREATE INDEX IF NOT EXISTS idx_download_history_status ON download_history(status)`,
	}

	for i, migration := range migrations {
		if _, err := b.db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i, err)
		}
	}
	return nil
}

// Load returns every entry in insertion order. Rows with an unreadable
// timestamp are skipped.
func (b *SQLiteBackend) Load() ([]model.HistoryEntry, error) {
	const funcName = "SQLiteBackend.Load"

	rows, err := b.db.Query(`
		SELECT url, title, quality, format, status, executed_at
		FROM download_history
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var (
			e  model.HistoryEntry
			ts string
		)
		if err := rows.Scan(&e.URL, &e.Title, &e.Quality, &e.Format, &e.Status, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if e.Timestamp, err = time.Parse(timestampLayout, ts); err != nil {
			logger.Warn("skipping history row with bad timestamp",
				zap.String("function", funcName),
				zap.String("url", e.URL),
				zap.String("executed_at", ts),
				zap.Error(err),
			)
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Append inserts one entry
func (b *SQLiteBackend) Append(e model.HistoryEntry) error {
	_, err := b.db.Exec(`
		INSERT INTO download_history (url, title, quality, format, status, executed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		e.URL,
		e.Title,
		string(e.Quality),
		string(e.Format),
		string(e.Status),
		e.Timestamp.UTC().Format(timestampLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record history entry: %w", err)
	}
	return nil
}

// Clear deletes every entry
func (b *SQLiteBackend) Clear() error {
	if _, err := b.db.Exec(`DELETE FROM download_history`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the database
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
