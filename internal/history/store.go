// Package history keeps the log of past download attempts. The in-memory log
// is authoritative for the process lifetime; every mutation is written through
// to a Backend, and backend failures are logged and otherwise ignored.
package history

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

// JSONExtension selects the JSON backend in Open
const JSONExtension = ".json"

// DefaultListLimit is how many entries the history view shows
const DefaultListLimit = 50

// Backend persists the history log
type Backend interface {
	// Load returns the persisted entries, oldest first
	Load() ([]model.HistoryEntry, error)
	Append(entry model.HistoryEntry) error
	Clear() error
	Close() error
}

// Store is the history log
type Store struct {
	mu      sync.RWMutex
	entries []model.HistoryEntry // oldest first
	backend Backend
}

// NewStore creates a store over backend, loading what it already holds. A nil
// backend keeps history in memory only. A failed load starts an empty log.
func NewStore(backend Backend) *Store {
	const funcName = "NewStore"

	s := &Store{backend: backend}
	if backend == nil {
		return s
	}

	entries, err := backend.Load()
	if err != nil {
		logger.Warn("failed to load history, starting empty",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return s
	}
	s.entries = entries
	return s
}

// Open creates a store persisted at path: JSON when path ends in .json,
// SQLite otherwise. An empty path keeps history in memory.
func Open(path string) (*Store, error) {
	if path == "" {
		return NewStore(nil), nil
	}

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	var (
		backend Backend
		err     error
	)
	if strings.EqualFold(filepath.Ext(path), JSONExtension) {
		backend = NewJSONBackend(path)
	} else {
		backend, err = OpenSQLite(path)
		if err != nil {
			return nil, err
		}
	}
	return NewStore(backend), nil
}

// Append records entry and persists it immediately
func (s *Store) Append(entry model.HistoryEntry) {
	const funcName = "Store.Append"

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, entry)
	if s.backend == nil {
		return
	}
	if err := s.backend.Append(entry); err != nil {
		logger.Error("failed to persist history entry",
			zap.String("function", funcName),
			zap.String("url", entry.URL),
			zap.Error(err),
		)
	}
}

// List returns up to limit entries, most recent first. limit <= 0 means all.
func (s *Store) List(limit int) []model.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]model.HistoryEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.entries[i])
	}
	return out
}

// Clear empties the log
func (s *Store) Clear() {
	const funcName = "Store.Clear"

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	if s.backend == nil {
		return
	}
	if err := s.backend.Clear(); err != nil {
		logger.Error("failed to clear persisted history",
			zap.String("function", funcName),
			zap.Error(err),
		)
	}
}

// Stats counts entries by outcome
func (s *Store) Stats() model.HistoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := model.HistoryStats{Total: len(s.entries)}
	for _, e := range s.entries {
		switch e.Status {
		case model.HistoryStatusCompleted:
			stats.Completed++
		case model.HistoryStatusFailed:
			stats.Failed++
		}
	}
	return stats
}

// Close releases the backend
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}
